package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tacit-labs/tacit/internal/extraction/application/commands"
)

// CommunicationHandler handles communication processing requests.
type CommunicationHandler struct {
	useCase *commands.ProcessCommunicationUseCase
	logger  *slog.Logger
}

// NewCommunicationHandler creates a new communication handler.
func NewCommunicationHandler(useCase *commands.ProcessCommunicationUseCase, logger *slog.Logger) *CommunicationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommunicationHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// ProcessCommunication handles POST /api/v1/communications
func (h *CommunicationHandler) ProcessCommunication(w http.ResponseWriter, r *http.Request) {
	var req commands.ProcessCommunicationRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, ErrBadRequest.WithMessage("Invalid request body: "+err.Error()))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var fieldErr *commands.FieldError
		if errors.As(err, &fieldErr) {
			writeError(w, ErrBadRequest.WithMessage(fieldErr.Error()))
			return
		}
		h.logger.Error("failed to process communication", "error", err)
		writeError(w, ErrInternalServer)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Package commands contains the application use cases of the
// extraction context.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/extraction/pipeline"
	"github.com/tacit-labs/tacit/internal/shared/infrastructure/eventbus"
	"github.com/tacit-labs/tacit/pkg/observability"
)

// FieldError identifies the inbound field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

// ProcessCommunicationRequest is the inbound DTO shared by the HTTP
// handler and the queue consumer.
type ProcessCommunicationRequest struct {
	Content   string     `json:"content"`
	Sender    string     `json:"sender"`
	Recipient string     `json:"recipient"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Validate checks the required identity fields. Empty content is valid:
// it simply yields zero reminders.
func (r ProcessCommunicationRequest) Validate() error {
	if strings.TrimSpace(r.Sender) == "" {
		return &FieldError{Field: "sender", Reason: "is required"}
	}
	if strings.TrimSpace(r.Recipient) == "" {
		return &FieldError{Field: "recipient", Reason: "is required"}
	}
	return nil
}

// CommitmentResponse is the nested commitment view in a reminder.
type CommitmentResponse struct {
	Who       string    `json:"who"`
	What      string    `json:"what"`
	Where     string    `json:"where"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ReminderResponse is the outbound view of one scheduled reminder.
type ReminderResponse struct {
	When         time.Time          `json:"when"`
	Message      string             `json:"message"`
	Acknowledged bool               `json:"acknowledged"`
	Commitment   CommitmentResponse `json:"commitment"`
}

// ProcessCommunicationResponse is the result of one processing call.
type ProcessCommunicationResponse struct {
	Processed bool               `json:"processed"`
	Reminders []ReminderResponse `json:"reminders"`
}

// ProcessCommunicationUseCase runs the extraction pipeline for one
// communication and optionally publishes a result event.
type ProcessCommunicationUseCase struct {
	assembler      *pipeline.Assembler
	publisher      eventbus.Publisher
	publishResults bool
	logger         *slog.Logger
	metrics        observability.Metrics
}

func NewProcessCommunicationUseCase(
	assembler *pipeline.Assembler,
	publisher eventbus.Publisher,
	publishResults bool,
	logger *slog.Logger,
	metrics observability.Metrics,
) *ProcessCommunicationUseCase {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ProcessCommunicationUseCase{
		assembler:      assembler,
		publisher:      publisher,
		publishResults: publishResults,
		logger:         logger,
		metrics:        metrics,
	}
}

// Execute validates the request, runs the pipeline and maps the result.
// Result publication is fire-and-forget: its failure never affects the
// returned response.
func (uc *ProcessCommunicationUseCase) Execute(ctx context.Context, req ProcessCommunicationRequest) (*ProcessCommunicationResponse, error) {
	ctx = observability.WithOperation(ctx, "process_communication")

	if err := req.Validate(); err != nil {
		return nil, err
	}

	timestamp := time.Time{}
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}
	comm, err := domain.NewCommunication(req.Content, req.Sender, req.Recipient, timestamp)
	if err != nil {
		return nil, err
	}

	timer := observability.StartTimer("process_communication").
		WithLogger(uc.logger).WithMetrics(uc.metrics)
	reminders := uc.assembler.Process(ctx, comm)
	timer.Stop()

	uc.metrics.Counter(observability.MetricCommunicationsProcessed, 1)
	uc.logger.InfoContext(ctx, "communication processed",
		slog.String("sender", comm.Sender()),
		slog.String("recipient", comm.Recipient()),
		slog.Int("reminders", len(reminders)))

	uc.publishResult(ctx, comm, len(reminders))

	response := &ProcessCommunicationResponse{
		Processed: true,
		Reminders: make([]ReminderResponse, 0, len(reminders)),
	}
	for _, r := range reminders {
		response.Reminders = append(response.Reminders, toReminderResponse(r))
	}
	return response, nil
}

func (uc *ProcessCommunicationUseCase) publishResult(ctx context.Context, comm domain.Communication, reminderCount int) {
	if uc.publisher == nil || !uc.publishResults {
		return
	}

	event := domain.NewCommunicationProcessed(comm.Sender(), comm.Recipient(), reminderCount)
	body, err := json.Marshal(map[string]any{
		"sender":         event.Sender,
		"recipient":      event.Recipient,
		"reminder_count": event.ReminderCount,
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "encoding result event failed", slog.String("error", err.Error()))
		return
	}
	payload, err := json.Marshal(eventbus.ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       body,
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "encoding result event failed", slog.String("error", err.Error()))
		return
	}

	if err := uc.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		uc.logger.WarnContext(ctx, "publishing result event failed", slog.String("error", err.Error()))
		return
	}
	uc.metrics.Counter(observability.MetricEventsPublished, 1)
}

func toReminderResponse(r *domain.Reminder) ReminderResponse {
	c := r.Commitment()
	return ReminderResponse{
		When:         r.When(),
		Message:      r.Message(),
		Acknowledged: r.Acknowledged(),
		Commitment: CommitmentResponse{
			Who:       c.Who(),
			What:      c.What(),
			Where:     c.Where(),
			StartTime: c.StartTime(),
			EndTime:   c.EndTime(),
		},
	}
}

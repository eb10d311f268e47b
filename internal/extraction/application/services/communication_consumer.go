// Package services contains application services of the extraction
// context, including the queue-facing consumer.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tacit-labs/tacit/internal/extraction/application/commands"
	"github.com/tacit-labs/tacit/internal/shared/infrastructure/eventbus"
	"github.com/tacit-labs/tacit/pkg/observability"
)

// EventTypeMessageReceived is the routing key of inbound communication
// messages.
const EventTypeMessageReceived = "communications.message.received"

// communicationPayload is the wire shape of an inbound communication.
// Pointer fields distinguish a missing key from an empty value.
type communicationPayload struct {
	Content   *string    `json:"content"`
	Sender    *string    `json:"sender"`
	Recipient *string    `json:"recipient"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// CommunicationConsumer processes inbound communication events from the
// message bus. Malformed payloads are rejected without redelivery;
// processing failures requeue.
type CommunicationConsumer struct {
	useCase *commands.ProcessCommunicationUseCase
	logger  *slog.Logger
	metrics observability.Metrics
}

func NewCommunicationConsumer(useCase *commands.ProcessCommunicationUseCase, logger *slog.Logger, metrics observability.Metrics) *CommunicationConsumer {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CommunicationConsumer{
		useCase: useCase,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *CommunicationConsumer) EventTypes() []string {
	return []string{EventTypeMessageReceived}
}

func (c *CommunicationConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	c.metrics.Counter(observability.MetricEventsConsumed, 1)

	req, err := decodePayload(event.Payload)
	if err != nil {
		c.logger.WarnContext(ctx, "rejecting malformed communication message",
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", eventbus.ErrDiscardMessage, err)
	}

	if _, err := c.useCase.Execute(ctx, req); err != nil {
		var fieldErr *commands.FieldError
		if errors.As(err, &fieldErr) {
			c.logger.WarnContext(ctx, "rejecting invalid communication message",
				slog.String("event_id", event.EventID.String()),
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: %w", eventbus.ErrDiscardMessage, err)
		}
		return fmt.Errorf("processing communication: %w", err)
	}
	return nil
}

func decodePayload(raw json.RawMessage) (commands.ProcessCommunicationRequest, error) {
	var payload communicationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return commands.ProcessCommunicationRequest{}, fmt.Errorf("decoding payload: %w", err)
	}

	var missing []string
	if payload.Content == nil {
		missing = append(missing, "content")
	}
	if payload.Sender == nil || *payload.Sender == "" {
		missing = append(missing, "sender")
	}
	if payload.Recipient == nil || *payload.Recipient == "" {
		missing = append(missing, "recipient")
	}
	if len(missing) > 0 {
		return commands.ProcessCommunicationRequest{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	return commands.ProcessCommunicationRequest{
		Content:   *payload.Content,
		Sender:    *payload.Sender,
		Recipient: *payload.Recipient,
		Timestamp: payload.Timestamp,
	}, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/shared/infrastructure/eventbus"
	"github.com/tacit-labs/tacit/pkg/observability"
)

// ResultLogger consumes processed-communication result events and logs
// them. It backs the in-process bus in local mode, where published
// results would otherwise go nowhere.
type ResultLogger struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

func NewResultLogger(logger *slog.Logger, metrics observability.Metrics) *ResultLogger {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ResultLogger{logger: logger, metrics: metrics}
}

func (l *ResultLogger) EventTypes() []string {
	return []string{domain.CommunicationProcessedKey}
}

func (l *ResultLogger) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	l.metrics.Counter(observability.MetricEventsConsumed, 1)

	var payload struct {
		Sender        string `json:"sender"`
		Recipient     string `json:"recipient"`
		ReminderCount int    `json:"reminder_count"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("%w: decoding result payload: %w", eventbus.ErrDiscardMessage, err)
	}

	l.logger.InfoContext(ctx, "communication processed",
		slog.String("event_id", event.EventID.String()),
		slog.String("sender", payload.Sender),
		slog.String("recipient", payload.Recipient),
		slog.Int("reminders", payload.ReminderCount))
	return nil
}

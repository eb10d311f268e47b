package services_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/application/services"
	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/shared/infrastructure/eventbus"
	"github.com/tacit-labs/tacit/pkg/observability"
)

func TestResultLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("handles result events", func(t *testing.T) {
		metrics := observability.NewInMemoryMetrics()
		consumer := services.NewResultLogger(logger, metrics)

		assert.Equal(t, []string{domain.CommunicationProcessedKey}, consumer.EventTypes())

		body, err := json.Marshal(map[string]any{
			"sender":         "alice",
			"recipient":      "bob",
			"reminder_count": 2,
		})
		require.NoError(t, err)

		err = consumer.Handle(context.Background(), &eventbus.ConsumedEvent{
			EventID:    uuid.New(),
			RoutingKey: domain.CommunicationProcessedKey,
			OccurredAt: time.Now(),
			Payload:    body,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsConsumed))
	})

	t.Run("discards undecodable payloads", func(t *testing.T) {
		consumer := services.NewResultLogger(logger, nil)

		err := consumer.Handle(context.Background(), &eventbus.ConsumedEvent{
			EventID: uuid.New(),
			Payload: json.RawMessage(`"not an object"`),
		})

		assert.ErrorIs(t, err, eventbus.ErrDiscardMessage)
	})

	t.Run("receives events published on the in process bus", func(t *testing.T) {
		metrics := observability.NewInMemoryMetrics()
		consumer := services.NewResultLogger(logger, metrics)

		bus := eventbus.NewInProcessEventBus(logger)
		bus.RegisterConsumer(consumer)

		body, err := json.Marshal(map[string]any{
			"sender":         "alice",
			"recipient":      "bob",
			"reminder_count": 1,
		})
		require.NoError(t, err)
		payload, err := json.Marshal(eventbus.ConsumedEvent{
			EventID:    uuid.New(),
			RoutingKey: domain.CommunicationProcessedKey,
			OccurredAt: time.Now(),
			Payload:    body,
		})
		require.NoError(t, err)

		err = bus.Publish(context.Background(), domain.CommunicationProcessedKey, payload)

		require.NoError(t, err)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsConsumed))
	})
}

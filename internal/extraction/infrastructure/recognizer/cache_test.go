package recognizer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/pkg/observability"
)

type fakeStore struct {
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.setKeys = append(s.setKeys, key)
	return nil
}

type countingRecognizer struct {
	entities []domain.Entity
	err      error
	calls    int
}

func (c *countingRecognizer) Recognize(_ context.Context, _ string) ([]domain.Entity, error) {
	c.calls++
	return c.entities, c.err
}

func TestCache_Recognize(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	entities := []domain.Entity{{Label: "PER", Text: "Anna", Start: 0, End: 4, Confidence: 0.9}}

	t.Run("miss populates the store", func(t *testing.T) {
		store := newFakeStore()
		inner := &countingRecognizer{entities: entities}
		cache := newCacheWithStore(store, inner, time.Minute, logger, nil)

		got, err := cache.Recognize(context.Background(), "meet Anna")

		require.NoError(t, err)
		assert.Equal(t, entities, got)
		assert.Equal(t, 1, inner.calls)
		require.Len(t, store.setKeys, 1)
		assert.Contains(t, store.setKeys[0], "tacit:ner:")
	})

	t.Run("hit skips the inner backend", func(t *testing.T) {
		store := newFakeStore()
		encoded, err := json.Marshal(entities)
		require.NoError(t, err)
		store.data[cacheKey("meet Anna")] = string(encoded)

		inner := &countingRecognizer{}
		metrics := observability.NewInMemoryMetrics()
		cache := newCacheWithStore(store, inner, time.Minute, logger, metrics)

		got, err := cache.Recognize(context.Background(), "meet Anna")

		require.NoError(t, err)
		assert.Equal(t, entities, got)
		assert.Zero(t, inner.calls)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricRecognizerCacheHits))
	})

	t.Run("store read error falls through", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("connection refused")
		inner := &countingRecognizer{entities: entities}
		cache := newCacheWithStore(store, inner, time.Minute, logger, nil)

		got, err := cache.Recognize(context.Background(), "meet Anna")

		require.NoError(t, err)
		assert.Equal(t, entities, got)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("store write error is swallowed", func(t *testing.T) {
		store := newFakeStore()
		store.setErr = errors.New("connection refused")
		inner := &countingRecognizer{entities: entities}
		cache := newCacheWithStore(store, inner, time.Minute, logger, nil)

		got, err := cache.Recognize(context.Background(), "meet Anna")

		require.NoError(t, err)
		assert.Equal(t, entities, got)
	})

	t.Run("inner error propagates", func(t *testing.T) {
		store := newFakeStore()
		inner := &countingRecognizer{err: errors.New("model unavailable")}
		cache := newCacheWithStore(store, inner, time.Minute, logger, nil)

		_, err := cache.Recognize(context.Background(), "meet Anna")

		assert.Error(t, err)
		assert.Empty(t, store.setKeys)
	})

	t.Run("corrupt cached payload falls through", func(t *testing.T) {
		store := newFakeStore()
		store.data[cacheKey("meet Anna")] = "not json"
		inner := &countingRecognizer{entities: entities}
		cache := newCacheWithStore(store, inner, time.Minute, logger, nil)

		got, err := cache.Recognize(context.Background(), "meet Anna")

		require.NoError(t, err)
		assert.Equal(t, entities, got)
		assert.Equal(t, 1, inner.calls)
	})
}

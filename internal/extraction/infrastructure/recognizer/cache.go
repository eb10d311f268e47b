package recognizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/pkg/observability"
)

const cacheKeyPrefix = "tacit:ner:"

// entityStore is the narrow cache contract; redisStore is the
// production implementation.
type entityStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func (s redisStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Cache is a read-through decorator over another recognizer. Cache
// misses and store errors fall through to the inner backend; store
// write failures are logged and never surfaced.
type Cache struct {
	inner   domain.Recognizer
	store   entityStore
	ttl     time.Duration
	logger  *slog.Logger
	metrics observability.Metrics
}

func NewCache(client *redis.Client, inner domain.Recognizer, ttl time.Duration, logger *slog.Logger, metrics observability.Metrics) *Cache {
	return newCacheWithStore(redisStore{client: client}, inner, ttl, logger, metrics)
}

func newCacheWithStore(store entityStore, inner domain.Recognizer, ttl time.Duration, logger *slog.Logger, metrics observability.Metrics) *Cache {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Cache{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Cache) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	key := cacheKey(text)

	if cached, err := c.store.Get(ctx, key); err == nil {
		var entities []domain.Entity
		if err := json.Unmarshal([]byte(cached), &entities); err == nil {
			c.metrics.Counter(observability.MetricRecognizerCacheHits, 1)
			return entities, nil
		}
	}

	entities, err := c.inner.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(entities); err == nil {
		if err := c.store.Set(ctx, key, string(encoded), c.ttl); err != nil {
			c.logger.DebugContext(ctx, "recognizer cache write failed",
				slog.String("error", err.Error()))
		}
	}
	return entities, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Package app wires configuration, infrastructure and the extraction
// pipeline into runnable components.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/tacit-labs/tacit/internal/extraction/application/commands"
	"github.com/tacit-labs/tacit/internal/extraction/application/services"
	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/extraction/infrastructure/recognizer"
	"github.com/tacit-labs/tacit/internal/extraction/pipeline"
	"github.com/tacit-labs/tacit/internal/shared/infrastructure/eventbus"
	"github.com/tacit-labs/tacit/pkg/config"
	"github.com/tacit-labs/tacit/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// Redis (nil when caching is disabled)
	RedisClient *redis.Client

	// Extraction pipeline
	Recognizer domain.Recognizer
	Assembler  *pipeline.Assembler

	// Application
	UseCase  *commands.ProcessCommunicationUseCase
	Consumer *services.CommunicationConsumer

	// Messaging
	EventPublisher eventbus.Publisher

	// Health
	Health *observability.HealthRegistry
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
	}

	// Connect to Redis (optional, enables the recognizer cache)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, recognizer cache disabled", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, recognizer cache disabled", "error", err)
			} else {
				c.RedisClient = redisClient
				logger.Info("connected to Redis")
			}
		}
	}

	// Build the recognizer backend
	rec, err := buildRecognizer(cfg, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	if c.RedisClient != nil {
		rec = recognizer.NewCache(c.RedisClient, rec, cfg.RecognizerCacheTTL, logger, c.Metrics)
	}
	c.Recognizer = rec

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to an in-process bus in development so published
		// results are still dispatched and logged locally
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, dispatching events in process")
			bus := eventbus.NewInProcessEventBus(logger)
			bus.RegisterConsumer(services.NewResultLogger(logger, c.Metrics))
			c.EventPublisher = bus
		} else {
			c.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	// Assemble the pipeline and application layer
	c.Assembler = pipeline.NewAssembler(c.Recognizer, buildPolicy(cfg), logger, c.Metrics)
	c.UseCase = commands.NewProcessCommunicationUseCase(c.Assembler, c.EventPublisher, cfg.PublishResults, logger, c.Metrics)
	c.Consumer = services.NewCommunicationConsumer(c.UseCase, logger, c.Metrics)

	c.registerHealthChecks()

	return c, nil
}

// NewLocalContainer wires the extraction pipeline without broker or
// cache connections, for one-shot CLI use.
func NewLocalContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	rec, err := buildRecognizer(cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:         cfg,
		Logger:         logger,
		Metrics:        observability.NewInMemoryMetrics(),
		Health:         observability.NewHealthRegistry(),
		Recognizer:     rec,
		EventPublisher: eventbus.NewNoopPublisher(logger),
	}
	c.Assembler = pipeline.NewAssembler(c.Recognizer, buildPolicy(cfg), logger, c.Metrics)
	c.UseCase = commands.NewProcessCommunicationUseCase(c.Assembler, c.EventPublisher, false, logger, c.Metrics)
	c.Consumer = services.NewCommunicationConsumer(c.UseCase, logger, c.Metrics)

	return c, nil
}

func buildRecognizer(cfg *config.Config, logger *slog.Logger) (domain.Recognizer, error) {
	switch cfg.RecognizerBackend {
	case config.RecognizerRuler:
		return recognizer.NewRuler(), nil
	case config.RecognizerRemote:
		return recognizer.NewRemote(cfg.RecognizerURL, cfg.RecognizerTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown recognizer backend %q", cfg.RecognizerBackend)
	}
}

func buildPolicy(cfg *config.Config) pipeline.SchedulePolicy {
	switch cfg.ReminderPolicy {
	case config.ReminderPolicyLead:
		return pipeline.FixedLeadPolicy{Lead: cfg.ReminderLeadTime}
	default:
		return pipeline.DeparturePolicy{
			Travel: cfg.DefaultTravelTime,
			Prep:   cfg.DefaultPrepTime,
		}
	}
}

func (c *Container) registerHealthChecks() {
	if c.Config.RecognizerBackend == config.RecognizerRemote {
		rec := c.Recognizer
		c.Health.Register("recognizer", observability.RecognizerHealthChecker(func(ctx context.Context) error {
			_, err := rec.Recognize(ctx, "ping")
			return err
		}))
	}

	if c.RedisClient != nil {
		client := c.RedisClient
		c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
	}

	if publisher, ok := c.EventPublisher.(*eventbus.RabbitMQPublisher); ok {
		c.Health.Register("rabbitmq", observability.RabbitMQHealthChecker(publisher.HealthCheck))
	}
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tacit-labs/tacit/internal/app"
	"github.com/tacit-labs/tacit/internal/shared/infrastructure/eventbus"
	"github.com/tacit-labs/tacit/pkg/config"
	"github.com/tacit-labs/tacit/pkg/observability"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the queue worker",
	Long: `Starts the worker that consumes communication messages from the
broker and processes them through the extraction pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("initializing container: %w", err)
		}
		defer container.Close()

		healthServer := startWorkerHealthServer(cfg.WorkerHealthAddr, container.Health)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = healthServer.Shutdown(shutdownCtx)
		}()

		registry := eventbus.NewConsumerRegistry(logger)
		registry.Register(container.Consumer)

		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: cfg.QueueName,
			Prefetch:  cfg.ConsumerPrefetch,
			Logger:    logger,
		}, registry)
		if err != nil {
			if !cfg.IsDevelopment() {
				return fmt.Errorf("connecting to RabbitMQ: %w", err)
			}
			// Keep the worker alive in development so the health
			// endpoint stays reachable while the broker is down.
			logger.Warn("RabbitMQ not available, worker idling", "error", err)
			<-ctx.Done()
			return nil
		}
		defer func() {
			if err := consumer.Close(); err != nil {
				logger.Warn("error closing consumer", "error", err)
			}
		}()

		logger.Info("worker started",
			"queue", cfg.QueueName,
			"prefetch", cfg.ConsumerPrefetch,
		)

		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("consumer stopped: %w", err)
		}
		return nil
	},
}

// startWorkerHealthServer exposes the health registry on its own
// listener so orchestrators can probe the worker.
func startWorkerHealthServer(addr string, health *observability.HealthRegistry) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		overall := health.GetOverallHealth(r.Context())

		status := http.StatusOK
		if overall.Status == observability.HealthStatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(overall)
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("worker health server stopped", "error", err)
		}
	}()
	return server
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

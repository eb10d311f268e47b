package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tacit-labs/tacit/adapter/cli"
	"github.com/tacit-labs/tacit/pkg/observability"
)

func main() {
	// Setup logger
	logCfg := observability.DefaultLogConfig()
	if os.Getenv("APP_ENV") == "production" {
		logCfg = observability.ProductionLogConfig()
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logCfg.Level = observability.LogLevel(level)
	}
	logCfg.ServiceVersion = cli.Version

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cli.SetLogConfig(logCfg)
	cli.ExecuteContext(ctx)
}

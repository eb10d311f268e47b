// Package cli implements the tacit command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tacit-labs/tacit/pkg/observability"
)

var (
	verbose bool
	logCfg  = observability.DefaultLogConfig()
	logger  *slog.Logger
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tacit",
	Short: "Tacit - commitment extraction from everyday communication",
	Long: `Tacit reads free-text communication, finds the commitments
people make in it and schedules reminders for them.

	It serves an HTTP API for synchronous processing and a queue
	worker for asynchronous message streams.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logCfg
		if verbose {
			cfg.Level = observability.LogLevelDebug
		}
		logger = observability.NewLogger(cfg)
		slog.SetDefault(logger)

		ctx := cmd.Context()
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.Debug("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Debug("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// ExecuteContext runs the root command with the given context so
// long-running subcommands stop on cancellation.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetLogConfig sets the base logging configuration the CLI builds its
// logger from before each command runs. The --verbose flag lowers the
// level to debug on top of it.
func SetLogConfig(cfg observability.LogConfig) {
	logCfg = cfg
}

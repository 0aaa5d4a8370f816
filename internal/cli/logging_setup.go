package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/logging"
)

// setupLogging configures logging from config and CLI flags and attaches a
// trace-scoped logger to the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}
	if loggingCfg.Output == nil {
		loggingCfg.Output = cmd.ErrOrStderr()
	}

	logger = logging.ComponentLogger(logging.NewLogger(loggingCfg), "cli")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
}

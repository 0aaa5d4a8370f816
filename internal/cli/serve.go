package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		maxSessions int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table over HTTP",
		Long: `Serves the table as an HTML page. Each browser session gets its own
table state, and every control is a link that applies one interaction.

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  pagedtable serve --addr 127.0.0.1:9000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			log := logging.FromContext(cmd.Context())
			factory, err := newWidgetFactory(a.cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.cfg.Server, factory, log, server.WithMaxSessions(maxSessions))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config and "+config.EnvAddr)
	cmd.Flags().IntVar(&maxSessions, "max-sessions", server.DefaultMaxSessions, "sessions kept before the oldest is dropped")
	return cmd
}

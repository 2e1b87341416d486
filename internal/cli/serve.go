package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func serveCmd(flags *rootFlags, info BuildInfo) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			a, err := newApp(cfg, os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("textart-server starting",
				"version", info.Version,
				"commit", info.GitCommit,
				"staging", cfg.Staging.Mode,
			)
			color.New(color.FgGreen, color.Bold).Fprintf(cmd.ErrOrStderr(), "textart-server %s listening on %s\n", info.Version, cfg.Server.Addr)

			if err := a.server().Run(ctx); err != nil {
				return err
			}
			color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "textart-server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

// runContext is the command context, or Background when cobra has none.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

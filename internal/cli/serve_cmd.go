package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmarovic/inflow/internal/httpapi"
	"github.com/dmarovic/inflow/internal/observability"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the intake HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := httpapi.DefaultServerConfig()
			if addr != "" {
				cfg.Addr = addr
			} else if app.HTTPAddr != "" {
				cfg.Addr = app.HTTPAddr
			}

			srv := httpapi.NewServer(app.Orchestrator, app.Approval, cfg, observability.Logger())

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides INFLOW_HTTP_ADDR)")
	return cmd
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution API over HTTP",
		Example: `  oc-svi serve
  oc-svi serve --port 9090
  OCSVI_SERVER_RATE_LIMIT=5 oc-svi serve`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := resolve.NewResolver(a.cfg.Report.BaseURL)
			r.SetLogger(a.logger)
			srv := server.NewServer(a.cfg, r, a.logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				a.logger.Info("shutdown signal received", zap.Stringer("signal", sig))
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "Listen port (default from config)")
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

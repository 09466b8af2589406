package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trngaudit/internal/api"
	"trngaudit/internal/container"
)

func newServeCmd(globals *globalFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the audit HTTP API",
		Long: `Serve audits over HTTP.

Routes:
  POST /v1/audits        audit the raw request body (?alpha= ?min_samples= ?format= ?record=)
  GET  /v1/audits        recorded audits, newest first (?limit=)
  GET  /v1/audits/{id}   one recorded audit
  GET  /metrics          Prometheus metrics
  GET  /healthz          liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, globals)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !cfg.Database.Enabled() {
				logger.Warn("no AUDIT_DATABASE_URL configured, ledger routes disabled")
			}
			c, err := container.New(ctx, cfg, logger, container.Options{
				Ledger:  cfg.Database.Enabled(),
				Metrics: true,
			})
			if err != nil {
				return err
			}
			defer c.Close()

			return api.NewServer(c.AuditService, c.Metrics, logger, cfg).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default $PORT or 8080)")
	return cmd
}

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve task form schemas over HTTP",
	Long: `Start the HTTP service.

Endpoints:
  GET  /healthz
  GET  /metrics
  GET  /v1/forms/seatunnel?format=json&image=...
  POST /v1/forms/seatunnel
  GET  /v1/forms/renderers

Examples:
  taskform serve
  taskform serve --host 0.0.0.0 --port 9090 --config taskform.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		return fail("build orchestrator", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(*cfg, orch, logger)
	logger.Info("starting server", zap.String("addr", srv.Addr()))
	if err := srv.Start(ctx); err != nil {
		return fail("serve", err)
	}
	logger.Info("server stopped")
	return nil
}

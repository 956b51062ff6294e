package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/cirrus/internal/observability"
	"github.com/3leaps/cirrus/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve status operations over HTTP",
	Long: `Run the HTTP server exposing account status and discoverability
negotiation, plus health and version endpoints.

Endpoints:
  GET  /v1/account-status
  POST /v1/permissions/user-discoverability
  GET  /health, /health/live, /health/ready
  GET  /version

Example:
  cirrus serve --bucket my-bucket --host 0.0.0.0 --port 8080`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	addConnectionFlags(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cont, cfg, err := newContainer(ctx)
	if err != nil {
		observability.CLILogger.Error("Failed to create container", zap.Error(err))
		return exitError(foundry.ExitInvalidArgument, "Invalid provider configuration", err)
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(host, port, cont, server.Options{
		Version:         versionInfo.Version,
		RateLimit:       cfg.Server.RateLimit,
		RateBurst:       cfg.Server.RateBurst,
		Logger:          observability.CLILogger,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	observability.CLILogger.Info("Server starting",
		zap.String("host", host),
		zap.Int("port", port),
	)

	if err := srv.ListenAndServe(ctx); err != nil {
		observability.CLILogger.Error("Server failed", zap.Error(err))
		return exitError(foundry.ExitExternalServiceUnavailable, "Server failed", err)
	}

	observability.CLILogger.Info("Server stopped")
	return nil
}

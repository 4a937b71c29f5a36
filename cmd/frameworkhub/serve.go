package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccsdigital/frameworkhub"
	"github.com/ccsdigital/frameworkhub/infrastructure/api"
	v1 "github.com/ccsdigital/frameworkhub/infrastructure/api/v1"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/ccsdigital/frameworkhub/internal/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables (prefix FRAMEWORKHUB_):
  HOST                    Server host to bind to (default: 0.0.0.0)
  PORT                    Server port to listen on (default: 8080)
  DB_URL                  Database URL (default: sqlite:///frameworkhub.db)
  LOG_LEVEL               Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT              Log format: pretty, json (default: pretty)
  IMPORT_TIMEOUT          Import run timeout (default: 30m)

  SALESFORCE_INSTANCE_URL  CRM instance URL
  SALESFORCE_TOKEN_URL     OAuth token URL (default: instance URL + /services/oauth2/token)
  SALESFORCE_CLIENT_ID     Connected app client id
  SALESFORCE_CLIENT_SECRET Connected app client secret
  SALESFORCE_USERNAME      API user username
  SALESFORCE_PASSWORD      API user password (with security token appended)
  SALESFORCE_API_VERSION   REST API version (default: v52.0)

  WORDPRESS_BASE_URL       CMS base URL
  WORDPRESS_USERNAME       CMS user
  WORDPRESS_APP_PASSWORD   CMS application password

  ELASTIC_ADDRESSES        Comma-separated index node addresses
  ELASTIC_SUFFIX           Index name suffix (index is supplier_<suffix>)
  ELASTIC_USERNAME         Basic auth user
  ELASTIC_PASSWORD         Basic auth password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars
	if host != "" {
		cfg = cfg.Apply(config.WithHost(host))
	}
	if port != 0 {
		cfg = cfg.Apply(config.WithPort(port))
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting frameworkhub", attrs...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := frameworkhub.New(ctx, cfg, frameworkhub.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create frameworkhub client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close frameworkhub client", slog.Any("error", err))
		}
	}()

	server := api.NewServer(cfg.Addr(), slogger)
	router := server.Router()

	router.Mount("/api/v1/frameworks", v1.NewFrameworksRouter(client).Routes())
	router.Mount("/api/v1/suppliers", v1.NewSuppliersRouter(client).Routes())
	router.Mount("/api/v1/import", v1.NewImportRouter(client).Routes())

	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"frameworkhub","version":"%s"}`, version)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

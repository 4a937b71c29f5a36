package main

import (
	"context"
	"fmt"

	"github.com/ccsdigital/frameworkhub"
	"github.com/ccsdigital/frameworkhub/internal/log"
	"github.com/spf13/cobra"
)

func reindexCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the supplier search index",
		Long: `Rebuild the supplier search index from the relational catalogue
without contacting the CRM. Suppliers on at least one live framework are
indexed; the rest are removed from the index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runReindex(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.Configure(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ImportTimeout())
	defer cancel()

	client, err := frameworkhub.New(ctx, cfg, frameworkhub.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create frameworkhub client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close frameworkhub client", "error", err)
		}
	}()

	if client.Search == nil {
		return fmt.Errorf("search index is not configured: set FRAMEWORKHUB_ELASTIC_* variables")
	}

	fmt.Println("reindexing suppliers...")
	result, err := client.Search.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	fmt.Printf("indexed: %d suppliers, removed: %d\n", result.Indexed, result.Removed)

	return nil
}

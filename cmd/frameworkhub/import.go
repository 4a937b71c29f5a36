package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ccsdigital/frameworkhub"
	appservice "github.com/ccsdigital/frameworkhub/application/service"
	"github.com/ccsdigital/frameworkhub/internal/log"
	"github.com/spf13/cobra"
)

// consoleReporter prints one line per imported record, matching the
// summary counts printed at the end of the run.
type consoleReporter struct{}

func (consoleReporter) Success(entity, salesforceID, title string) {
	fmt.Printf("  imported %s %s (%s)\n", entity, salesforceID, title)
}

func (consoleReporter) Failure(entity, salesforceID string, err error) {
	fmt.Fprintf(os.Stderr, "  failed %s %s: %v\n", entity, salesforceID, err)
}

func importCmd() *cobra.Command {
	var (
		envFile    string
		skipSearch bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Run the CRM import cascade",
		Long: `Run the CRM import cascade: frameworks, their lots, and the suppliers
awarded onto each lot. When a search index is configured the supplier
index is rebuilt afterwards unless --skip-search is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(envFile, skipSearch)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().BoolVar(&skipSearch, "skip-search", false, "Skip the supplier search reindex after the import")

	return cmd
}

func runImport(envFile string, skipSearch bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.Configure(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ImportTimeout())
	defer cancel()

	client, err := frameworkhub.New(ctx, cfg,
		frameworkhub.WithLogger(logger),
		frameworkhub.WithReporter(consoleReporter{}),
	)
	if err != nil {
		return fmt.Errorf("create frameworkhub client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close frameworkhub client", "error", err)
		}
	}()

	if client.Importer == nil {
		return fmt.Errorf("CRM is not configured: set FRAMEWORKHUB_SALESFORCE_* variables")
	}

	fmt.Println("importing from CRM...")
	result, err := client.Importer.Run(ctx)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("imported: %d frameworks, %d lots, %d suppliers\n",
		result.Imported.Frameworks, result.Imported.Lots, result.Imported.Suppliers)
	if result.Failed != (appservice.Counts{}) {
		fmt.Printf("failed:   %d frameworks, %d lots, %d suppliers\n",
			result.Failed.Frameworks, result.Failed.Lots, result.Failed.Suppliers)
	}

	if skipSearch || client.Search == nil {
		return nil
	}

	fmt.Println("reindexing suppliers...")
	reindex, err := client.Search.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	fmt.Printf("indexed: %d suppliers, removed: %d\n", reindex.Indexed, reindex.Removed)

	return nil
}

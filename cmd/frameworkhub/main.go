// Package main is the entry point for the frameworkhub CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frameworkhub",
		Short: "Framework catalogue sync and search server",
		Long:  `Frameworkhub syncs commercial frameworks, lots, and suppliers from the CRM into a relational catalogue, provisions CMS entries for them, and serves the catalogue and a supplier search index over HTTP.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(reindexCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env files and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	if envFile != "" {
		if err := config.LoadDotEnvFile(envFile); err != nil {
			return config.AppConfig{}, fmt.Errorf("load env file: %w", err)
		}
	} else if err := config.LoadDotEnv(); err != nil {
		return config.AppConfig{}, fmt.Errorf("load env files: %w", err)
	}

	env, err := config.NewEnvConfig()
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return env.ToAppConfig(), nil
}

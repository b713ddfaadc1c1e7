package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kouma-root/polly-go/config"
)

// validateCmd validates a config file without calling the API.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a polly configuration file without calling the API.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  polly validate -c polly.yaml
  polly validate --config /etc/polly/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return errors.New("--config is required")
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	creds := "not configured"
	if cfg.Credentials.Username != "" {
		creds = fmt.Sprintf("configured (%s)", cfg.Credentials.Username)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Base URL:    %s\n", cfg.BaseURL)
	fmt.Printf("  Timeout:     %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Page size:   %d\n", cfg.PageSize)
	fmt.Printf("  Credentials: %s\n", creds)

	return nil
}

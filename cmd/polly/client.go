package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kouma-root/polly-go"
	"github.com/kouma-root/polly-go/config"
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// loadConfig resolves the effective configuration: the config file if one
// was given, defaults otherwise, with flag values overriding either.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if cmd.Flags().Changed("base-url") {
		baseURL, _ := cmd.Flags().GetString("base-url")
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		cfg.Timeout = config.Duration(timeout)
	}

	return cfg, nil
}

// buildClient creates an SDK client from the resolved configuration.
// The caller owns the client and must Close it.
func buildClient(cmd *cobra.Command) (*polly.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	client, err := config.NewClient(cfg, polly.WithLogger(newLogger()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, cfg, nil
}

// opContext returns a context cancelled by SIGINT/SIGTERM, so a stuck
// request can be abandoned with Ctrl+C.
func opContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// credentials resolves the account credentials: flags first, then the
// config file's credentials block.
func credentials(cmd *cobra.Command, cfg *config.Config) (username, password string) {
	username, _ = cmd.Flags().GetString("username")
	password, _ = cmd.Flags().GetString("password")
	if username == "" {
		username = cfg.Credentials.Username
	}
	if password == "" {
		password = cfg.Credentials.Password
	}
	return username, password
}

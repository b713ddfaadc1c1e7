// Package config provides YAML configuration parsing for the polly CLI.
//
// This package enables pointing the CLI at a configuration file, as an
// alternative to repeating connection flags on every invocation.
//
// Example configuration:
//
//	base_url: ${POLLY_URL:-http://localhost:8000}
//	timeout: 5s
//	page_size: 25
//
//	credentials:
//	  username: alice
//	  password: ${POLLY_PASSWORD}
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kouma-root/polly-go"
)

// maxTimeout caps the per-request timeout so a mistyped duration cannot
// hang CLI invocations for minutes.
const maxTimeout = 5 * time.Minute

// Config is the root configuration structure for the polly CLI.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// BaseURL is the API root address. Defaults to http://localhost:8000.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout.
	// Accepts duration strings like "10s", "1m", "500ms".
	// Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// PageSize is the page size used when listing polls. Defaults to 10.
	PageSize int `yaml:"page_size"`

	// Credentials are the account credentials used by commands that
	// authenticate. Values support environment variable substitution.
	Credentials CredentialsConfig `yaml:"credentials"`
}

// CredentialsConfig holds the account credentials for authenticated commands.
type CredentialsConfig struct {
	// Username is the account name.
	Username string `yaml:"username"`

	// Password is the account password.
	// Supports environment variable substitution so the file itself
	// doesn't need to hold the secret: ${POLLY_PASSWORD}
	Password string `yaml:"password"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in BaseURL and Credentials values.
// Defaults are applied for BaseURL, Timeout, and PageSize.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = polly.DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(polly.DefaultTimeout)
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = polly.DefaultPageSize
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with every field at its default value.
//
// It is what [Parse] produces for an empty document, useful when no
// configuration file is given.
func Default() *Config {
	return &Config{
		BaseURL:  polly.DefaultBaseURL,
		Timeout:  Duration(polly.DefaultTimeout),
		PageSize: polly.DefaultPageSize,
	}
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	expanded, err := expandEnvVars(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	c.BaseURL = expanded

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsedURL.Scheme == "" {
		return errors.New("base_url must have a scheme (http:// or https://)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("base_url must have a host")
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}
	if c.Timeout.Duration() > maxTimeout {
		return fmt.Errorf("timeout must not exceed %s, got %s", maxTimeout, c.Timeout.Duration())
	}

	if c.PageSize < 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}

	expanded, err = expandEnvVars(c.Credentials.Username)
	if err != nil {
		return fmt.Errorf("credentials.username: %w", err)
	}
	c.Credentials.Username = expanded

	expanded, err = expandEnvVars(c.Credentials.Password)
	if err != nil {
		return fmt.Errorf("credentials.password: %w", err)
	}
	c.Credentials.Password = expanded

	if c.Credentials.Password != "" && c.Credentials.Username == "" {
		return errors.New("credentials: username is required when password is set")
	}

	return nil
}

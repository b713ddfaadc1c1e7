package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_EmptyConfig(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "http://localhost:8000")
	}
	if cfg.Timeout.Duration() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout.Duration())
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
base_url: https://polls.example.com
timeout: 5s
page_size: 25

credentials:
  username: alice
  password: s3cret
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != "https://polls.example.com" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://polls.example.com")
	}
	if cfg.Timeout.Duration() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout.Duration())
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.Credentials.Username != "alice" {
		t.Errorf("Username = %q, want %q", cfg.Credentials.Username, "alice")
	}
	if cfg.Credentials.Password != "s3cret" {
		t.Errorf("Password = %q, want %q", cfg.Credentials.Password, "s3cret")
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	// t.Setenv auto-restores after test (Go 1.17+)
	t.Setenv("TEST_POLLY_HOST", "polls.test.com")
	t.Setenv("TEST_POLLY_PASSWORD", "secret123")

	yaml := `
base_url: https://${TEST_POLLY_HOST}
credentials:
  username: alice
  password: ${TEST_POLLY_PASSWORD}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != "https://polls.test.com" {
		t.Errorf("BaseURL = %q, want https://polls.test.com", cfg.BaseURL)
	}
	if cfg.Credentials.Password != "secret123" {
		t.Errorf("Password = %q, want secret123", cfg.Credentials.Password)
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	// just ensure the var doesn't exist in the environment
	yaml := `
base_url: https://${UNSET_VAR:-fallback.example.com}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != "https://fallback.example.com" {
		t.Errorf("BaseURL = %q, want https://fallback.example.com", cfg.BaseURL)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	// MISSING_VAR is expected to not exist in the environment
	yaml := `
base_url: https://${MISSING_VAR}
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for missing env var, got nil")
	}
	if !strings.Contains(err.Error(), "MISSING_VAR") {
		t.Errorf("error should mention MISSING_VAR: %v", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantErrLike string
	}{
		{
			name:        "url without scheme",
			yaml:        `base_url: localhost:8000`,
			wantErrLike: "scheme",
		},
		{
			name:        "unsupported scheme",
			yaml:        `base_url: ftp://example.com`,
			wantErrLike: "scheme must be http or https",
		},
		{
			name:        "url without host",
			yaml:        `base_url: "http://"`,
			wantErrLike: "must have a host",
		},
		{
			name:        "negative timeout",
			yaml:        `timeout: -5s`,
			wantErrLike: "timeout cannot be negative",
		},
		{
			name:        "timeout exceeds maximum",
			yaml:        `timeout: 10m`,
			wantErrLike: "timeout must not exceed",
		},
		{
			name:        "negative page size",
			yaml:        `page_size: -5`,
			wantErrLike: "page_size must be positive",
		},
		{
			name: "password without username",
			yaml: `
credentials:
  password: s3cret
`,
			wantErrLike: "username is required when password is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrLike) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErrLike)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	yaml := `
this is not: valid: yaml: at all
  - broken
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML, got nil")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	yaml := `
timeout: not-a-duration
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error = %q, want to contain 'invalid duration'", err.Error())
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"seconds", "10s", 10 * time.Second, false},
		{"milliseconds", "1500ms", 1500 * time.Millisecond, false},
		{"minutes", "2m", 2 * time.Minute, false},
		{"combined", "1m30s", 90 * time.Second, false},
		{"invalid", "not-a-duration", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := `timeout: ` + tt.input

			cfg, err := Parse([]byte(yaml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.Timeout.Duration() != tt.want {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout.Duration(), tt.want)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	t.Setenv("EMPTY_VAR", "") // set but empty

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no vars", "plain text", "plain text", false},
		{"simple var", "${TEST_VAR}", "value", false},
		{"var in text", "prefix ${TEST_VAR} suffix", "prefix value suffix", false},
		{"multiple vars", "${TEST_VAR}-${TEST_VAR}", "value-value", false},
		{"with default (var set)", "${TEST_VAR:-default}", "value", false},
		{"with default (var unset)", "${UNSET:-default}", "default", false},
		{"missing required", "${MISSING}", "", true},
		{"empty default (var unset)", "${UNSET:-}", "", false},
		// set-but-empty env var should substitute empty string
		{"set but empty var", "${EMPTY_VAR}", "", false},
		{"set but empty with default", "${EMPTY_VAR:-fallback}", "", false}, // set var takes precedence
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UNSET and MISSING are expected to not exist in environment
			got, err := expandEnvVars(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expandEnvVars() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expandEnvVars() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	parsed, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != parsed.BaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, parsed.BaseURL)
	}
	if cfg.Timeout != parsed.Timeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout.Duration(), parsed.Timeout.Duration())
	}
	if cfg.PageSize != parsed.PageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, parsed.PageSize)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polly.yaml")
	content := `
base_url: https://polls.example.com
timeout: 3s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseURL != "https://polls.example.com" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://polls.example.com")
	}
	if cfg.Timeout.Duration() != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout.Duration())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q, want to contain 'failed to read config file'", err.Error())
	}
}

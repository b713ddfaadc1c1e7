package config

import (
	"testing"
	"time"

	"github.com/kouma-root/polly-go"
)

func TestBuildOptions(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://polls.example.com",
		Timeout: Duration(5 * time.Second),
	}

	client, err := polly.New(BuildOptions(cfg)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if client.BaseURL() != "https://polls.example.com" {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), "https://polls.example.com")
	}
	if client.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", client.Timeout())
	}
}

func TestBuildOptions_EmptyConfig(t *testing.T) {
	// zero-value config emits no options; the SDK's defaults apply
	opts := BuildOptions(&Config{})
	if len(opts) != 0 {
		t.Fatalf("len(opts) = %d, want 0", len(opts))
	}

	client, err := polly.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if client.BaseURL() != polly.DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), polly.DefaultBaseURL)
	}
	if client.Timeout() != polly.DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", client.Timeout(), polly.DefaultTimeout)
	}
}

func TestNewClient(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://polls.example.com",
		Timeout: Duration(5 * time.Second),
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if client.BaseURL() != "https://polls.example.com" {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), "https://polls.example.com")
	}
}

func TestNewClient_ExtraOptionsWin(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://polls.example.com",
		Timeout: Duration(5 * time.Second),
	}

	// extra options are applied after the file's, so they override it
	client, err := NewClient(cfg, polly.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if client.Timeout() != time.Second {
		t.Errorf("Timeout() = %v, want 1s (extra option should win)", client.Timeout())
	}
	if client.BaseURL() != "https://polls.example.com" {
		t.Errorf("BaseURL() = %q, want the file's value to survive", client.BaseURL())
	}
}

func TestNewClient_InvalidConfigValue(t *testing.T) {
	cfg := &Config{BaseURL: "not a url"}

	if _, err := NewClient(cfg); err == nil {
		t.Fatal("NewClient() expected error for invalid base URL, got nil")
	}
}

package config

import (
	"github.com/kouma-root/polly-go"
)

// BuildOptions converts parsed configuration into SDK client options.
//
// Only fields with a value are emitted, so the SDK's own defaults apply
// for anything the file leaves out.
func BuildOptions(cfg *Config) []polly.Option {
	var opts []polly.Option

	if cfg.BaseURL != "" {
		opts = append(opts, polly.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout != 0 {
		opts = append(opts, polly.WithTimeout(cfg.Timeout.Duration()))
	}

	return opts
}

// NewClient builds a [polly.Client] from the configuration.
//
// Options given here are applied after the configuration's own, so callers
// can override individual settings (flag values, a custom logger) without
// touching the file.
func NewClient(cfg *Config, extra ...polly.Option) (*polly.Client, error) {
	opts := BuildOptions(cfg)
	opts = append(opts, extra...)
	return polly.New(opts...)
}

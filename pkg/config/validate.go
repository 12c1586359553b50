package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if base := strings.TrimSpace(cfg.Backend.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("backend.base_url %q: %w", base, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("backend.base_url %q: scheme must be http or https", base)
		}
		if parsed.Host == "" {
			return fmt.Errorf("backend.base_url %q: missing host", base)
		}
		if parsed.RawQuery != "" || parsed.Fragment != "" {
			return fmt.Errorf("backend.base_url %q: must not carry a query or fragment", base)
		}
	}

	if cfg.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative, got %s", cfg.Backend.Timeout)
	}
	if cfg.Stub.TokenTTL < 0 {
		return fmt.Errorf("stub.token_ttl must not be negative, got %s", cfg.Stub.TokenTTL)
	}

	return nil
}

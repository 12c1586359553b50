package config

import (
	"strings"

	"backendprobe/pkg/client"
	"backendprobe/pkg/models"
	"backendprobe/pkg/server"
	"backendprobe/pkg/users"
)

const defaultStubAddr = ":8000"

// Normalize fills defaults and trims the base URL.
// It MUST be called only after Validate() for loaded files.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBaseURL
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = client.DefaultTimeout
	}

	// Empty form fields fall back to the screen's prefilled values.
	defaults := models.DefaultRegistrationInput()
	if cfg.Form.Email == "" {
		cfg.Form.Email = defaults.Email
	}
	if cfg.Form.Password == "" {
		cfg.Form.Password = defaults.Password
	}
	if cfg.Form.Name == "" {
		cfg.Form.Name = defaults.Name
	}

	if cfg.Stub.Addr == "" {
		cfg.Stub.Addr = defaultStubAddr
	}
	if cfg.Stub.Database == "" {
		cfg.Stub.Database = users.MemoryDSN
	}
	if cfg.Stub.TokenTTL == 0 {
		cfg.Stub.TokenTTL = server.DefaultTokenTTL
	}
}

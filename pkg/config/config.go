package config

import (
	"fmt"
	"os"
	"time"

	"backendprobe/pkg/models"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the local backend address the probe targets.
const DefaultBaseURL = "http://localhost:8000"

type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Form    FormConfig    `yaml:"form"`
	Log     LogConfig     `yaml:"log"`
	Stub    StubConfig    `yaml:"stub"`
}

// ---- BACKEND ----

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ---- REGISTRATION FORM ----

type FormConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Input returns the form as a registration request.
func (f FormConfig) Input() models.RegistrationInput {
	return models.RegistrationInput{Email: f.Email, Password: f.Password, Name: f.Name}
}

// ---- LOGGING ----

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// ---- STUB BACKEND ----

type StubConfig struct {
	Addr     string        `yaml:"addr"`
	Database string        `yaml:"database"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// Load reads a YAML file. Keys missing from the file keep their zero value
// until Normalize is called.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	return &cfg, nil
}

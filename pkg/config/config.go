package config

import (
	"errors"
	"strings"
)

const (
	DefaultBaseURL         = "https://api.mistral.ai/v1"
	DefaultModel           = "mistral-large-latest"
	DefaultTemperature     = 0.7
	DefaultSmallTalkRounds = 3
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey  = "MISTRAL_API_KEY"
	EnvBaseURL = "MISTRAL_BASE_URL"
	EnvModel   = "MISTRAL_MODEL"
)

// Config holds all runtime configuration for the interview demo.
type Config struct {
	SmallTalkRounds int
	ScriptPath      string
	Verbose         bool

	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxRetries  int
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		SmallTalkRounds: DefaultSmallTalkRounds,
		BaseURL:         DefaultBaseURL,
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
	}
}

// FromEnv overlays credentials and endpoint settings found through getenv.
// Unset or blank variables leave the corresponding field untouched.
func FromEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		return cfg
	}
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		cfg.Model = v
	}
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.ScriptPath = strings.TrimSpace(cfg.ScriptPath)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.SmallTalkRounds <= 0 {
		cfg.SmallTalkRounds = DefaultSmallTalkRounds
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return cfg
}

// Validate reports settings the model client cannot run without.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return errors.New(EnvAPIKey + " is not set")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return errors.New("Model is not set")
	}
	return nil
}

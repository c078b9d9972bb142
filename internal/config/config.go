// Package config loads the process configuration from the environment.
// Configuration is read once at startup and immutable afterwards.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultModel is used when GEMINI_MODEL is not set.
const DefaultModel = "gemini-2.0-flash-exp"

// Config holds everything the server needs to run.
type Config struct {
	APIKey             string `validate:"required"`
	Model              string `validate:"required"`
	SafetyLevel        string `validate:"required,oneof=none low medium high"`
	RateLimitPerMinute int    `validate:"required,gte=1"`
}

// Load reads and validates the configuration. A missing API key is a fatal
// configuration error surfaced to the caller.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("GEMINI_MODEL", DefaultModel)
	v.SetDefault("SAFETY_LEVEL", "medium")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 10)
	v.AutomaticEnv()

	cfg := &Config{
		APIKey:             v.GetString("GEMINI_API_KEY"),
		Model:              v.GetString("GEMINI_MODEL"),
		SafetyLevel:        v.GetString("SAFETY_LEVEL"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

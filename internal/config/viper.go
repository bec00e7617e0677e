// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Provider names accepted for ai.provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Provider       string `mapstructure:"provider" yaml:"provider"`
		Model          string `mapstructure:"model" yaml:"model"`
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		DebugLogging   bool   `mapstructure:"debug_logging" yaml:"debug_logging"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// Timeout returns the upstream request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ledgerlift")
	v.AddConfigPath(".ledgerlift")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGERLIFT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the environment, never from a file, and
	// accepts the provider-native variable names unprefixed.
	if err := v.BindEnv("ai.api_key", "OPENROUTER_API_KEY", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind API key environment variables: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("ai.provider", ProviderOpenRouter)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout_seconds", 120)
	v.SetDefault("ai.debug_logging", false)

	v.SetDefault("categories.file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.AI.Provider != ProviderOpenRouter && config.AI.Provider != ProviderGemini {
		return fmt.Errorf("invalid ai.provider: %s (must be %q or %q)", config.AI.Provider, ProviderOpenRouter, ProviderGemini)
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 600 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 600, got: %d", config.AI.TimeoutSeconds)
	}

	return nil
}

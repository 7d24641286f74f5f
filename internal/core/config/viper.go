package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("rules.path", "./conditions.json")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("engine.default_skip", true)
	v.SetDefault("engine.default_model", "")
	v.SetDefault("engine.default_scale", 1.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Bind environment variables with UPRULES_ prefix
	v.SetEnvPrefix("UPRULES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		RulesPath:    v.GetString("rules.path"),
		DatabaseURL:  v.GetString("storage.database_url"),
		DefaultSkip:  v.GetBool("engine.default_skip"),
		DefaultModel: v.GetString("engine.default_model"),
		DefaultScale: v.GetFloat64("engine.default_scale"),
		LogLevel:     v.GetString("log.level"),
		LogFormat:    v.GetString("log.format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the fallback action and logging settings.
func validateConfig(cfg *Config) error {
	if cfg.RulesPath == "" {
		return fmt.Errorf("rules.path must not be empty")
	}
	if cfg.DefaultScale <= 0 {
		return fmt.Errorf("engine.default_scale must be positive, got %v", cfg.DefaultScale)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("log.format must be json or text, got %q", cfg.LogFormat)
	}
	return nil
}

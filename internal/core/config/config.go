// Package config provides configuration management for the uprules CLI and
// any host application embedding the engine.
package config

import (
	"github.com/fumikura/uprules/internal/types"
)

// Config holds host-side settings. The engine packages never read this; the
// CLI and embedding applications wire it in.
type Config struct {
	RulesPath   string // condition list file used when --rules is not given
	DatabaseURL string // rule-set storage (sqlite://path or postgres://...)

	// Fallback action returned when no condition matches.
	DefaultSkip  bool
	DefaultModel string
	DefaultScale float64

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		RulesPath:    "./conditions.json",
		DatabaseURL:  "",
		DefaultSkip:  true,
		DefaultModel: "",
		DefaultScale: 1,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// DefaultAction builds the configured no-match fallback action.
func (c *Config) DefaultAction() types.Action {
	return types.Action{
		Skip:     c.DefaultSkip,
		Model:    c.DefaultModel,
		Scale:    c.DefaultScale,
		UseCache: true,
	}
}

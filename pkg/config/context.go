package config

import (
	"context"
	"sync"

	"github.com/pipefacts/pipefacts/pkg/logger"
)

// ContextKey is an alias used for storing values in context
type ContextKey string

// ConfigCtxKey is the context key used to store the active *Config.
const ConfigCtxKey ContextKey = "config"

// ContextWithConfig stores the configuration in the context.
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ConfigCtxKey, cfg)
}

var defaultConfig *Config
var defaultConfigOnce sync.Once

// FromContext returns the active configuration for the provided context,
// falling back to a lazily-loaded default (built-in values plus environment
// overrides) when none was attached.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ConfigCtxKey).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return getDefaultConfig(ctx)
}

func getDefaultConfig(ctx context.Context) *Config {
	defaultConfigOnce.Do(func() {
		cfg, err := NewLoader().Load()
		if err != nil {
			logger.FromContext(ctx).Warn("failed to load configuration, using built-in defaults", "error", err)
			cfg = Default()
		}
		defaultConfig = cfg
	})
	return defaultConfig
}

package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix scopes the environment variables the loader reads.
const EnvPrefix = "PIPEFACTS_"

// Loader assembles a Config in precedence order: built-in defaults, then
// PIPEFACTS_* environment overrides. Flag overrides are applied afterwards
// by the CLI layer.
type Loader struct {
	tree  *koanf.Koanf
	check *validator.Validate
}

// NewLoader creates a loader with a fresh koanf tree.
func NewLoader() *Loader {
	return &Loader{tree: koanf.New("."), check: validator.New()}
}

// Load builds and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.tree.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	envProvider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
	})
	if err := l.tree.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return l.decode()
}

// transformEnvKey converts environment variable names to koanf paths. The
// first segment is the section, the rest stays a single field name:
// ENGINE_DEFAULT_SCOPE -> engine.default_scope.
func transformEnvKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := l.tree.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := l.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a configuration against its struct tags.
func (l *Loader) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := l.check.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

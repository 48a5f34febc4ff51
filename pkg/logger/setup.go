package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ParseLevel maps a level name to a LogLevel. Unrecognized names fall back
// to info; validation of configured values happens in the config layer.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "disabled":
		return DisabledLevel
	default:
		return InfoLevel
	}
}

// FlagOverrides carries the shared logging flags of one command invocation.
// JSONSet and SourceSet record whether the flag was touched at all, so an
// untouched flag never clobbers a configured value.
type FlagOverrides struct {
	Level     string
	JSON      bool
	JSONSet   bool
	Source    bool
	SourceSet bool
}

// ReadFlags collects the shared logging flags from a command.
func ReadFlags(cmd *cobra.Command) (FlagOverrides, error) {
	var o FlagOverrides
	var err error
	if o.Level, err = cmd.Flags().GetString("log-level"); err != nil {
		return o, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if o.JSON, err = cmd.Flags().GetBool("log-json"); err != nil {
		return o, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	if o.Source, err = cmd.Flags().GetBool("log-source"); err != nil {
		return o, fmt.Errorf("failed to get log-source flag: %w", err)
	}
	o.JSONSet = cmd.Flags().Changed("log-json")
	o.SourceSet = cmd.Flags().Changed("log-source")
	return o, nil
}

// NewFromSettings builds a logger from resolved settings.
func NewFromSettings(level string, json, source bool) Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	cfg.JSON = json
	cfg.AddSource = source
	return NewLogger(cfg)
}

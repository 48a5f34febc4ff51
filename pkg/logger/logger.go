package logger

import (
	"flag"
	"io"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// LogLevel names a logging severity. The zero value is not valid; use the
// constants below.
type LogLevel string

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

func (l LogLevel) String() string {
	return string(l)
}

// ToCharmlogLevel converts the level for the underlying charm logger.
// DisabledLevel maps above every charm level so nothing is emitted.
func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	case InfoLevel:
		return charmlog.InfoLevel
	default:
		return charmlog.InfoLevel
	}
}

// Logger is the structured logging interface threaded through the engine.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

// Config holds the logger configuration.
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

// DefaultConfig returns the configuration used when no explicit one is given.
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stdout,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

// TestConfig returns a silent configuration for use in tests.
func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

// logger adapts a charm logger to the Logger interface.
type logger struct {
	base *charmlog.Logger
}

func (l *logger) Debug(msg string, keyvals ...any) { l.base.Debug(msg, keyvals...) }
func (l *logger) Info(msg string, keyvals ...any)  { l.base.Info(msg, keyvals...) }
func (l *logger) Warn(msg string, keyvals ...any)  { l.base.Warn(msg, keyvals...) }
func (l *logger) Error(msg string, keyvals ...any) { l.base.Error(msg, keyvals...) }

func (l *logger) With(keyvals ...any) Logger {
	return &logger{base: l.base.With(keyvals...)}
}

// NewLogger creates a Logger from the given configuration. A nil configuration
// falls back to DefaultConfig, or to TestConfig when running under `go test`.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		if IsTestEnvironment() {
			cfg = TestConfig()
		} else {
			cfg = DefaultConfig()
		}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	base := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		base.SetFormatter(charmlog.JSONFormatter)
	} else {
		base.SetFormatter(charmlog.TextFormatter)
	}
	return &logger{base: base}
}

// IsTestEnvironment reports whether the process is running under `go test`.
func IsTestEnvironment() bool {
	if flag.Lookup("test.v") != nil {
		return true
	}
	return strings.HasSuffix(os.Args[0], ".test")
}

var (
	defaultLogger     Logger
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger(nil)
	})
	return defaultLogger
}

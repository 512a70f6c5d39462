package logging

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName stamps every production log line
const ServiceName = "appshell"

// ErrFixedLevel is returned by SetLevel on a logger built around an existing
// core, whose level belongs to whoever built the core.
var ErrFixedLevel = errors.New("log level is fixed")

// Logger wraps zap.Logger with shell specific helpers.
type Logger struct {
	*zap.Logger
	level *zap.AtomicLevel
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// New builds the host logger. Production writes sampled JSON stamped with the
// service name; development writes colored console lines.
func New(cfg Config) (*Logger, error) {
	name := cfg.Level
	if name == "" {
		name = "info"
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.MessageKey = "message"
		zc.EncoderConfig.NameKey = "component"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
		zc.InitialFields = map[string]any{"service": ServiceName}
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stdout"}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}

	zl, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: zl, level: &zc.Level}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Wrap adapts an existing zap logger (observer cores in tests).
func Wrap(l *zap.Logger) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{Logger: l}
}

// Component returns a named child logger for one shell component. Children
// share the parent's level.
func (l *Logger) Component(name string) *Logger {
	if l == nil {
		return NewNop().Component(name)
	}
	return &Logger{Logger: l.Logger.Named(name), level: l.level}
}

// Level returns the lowest enabled level.
func (l *Logger) Level() zapcore.Level {
	if l.level != nil {
		return l.level.Level()
	}
	return zapcore.LevelOf(l.Core())
}

// SetLevel changes the level of this logger and every logger sharing it.
func (l *Logger) SetLevel(name string) error {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	if l.level == nil {
		return ErrFixedLevel
	}
	l.level.SetLevel(level)
	return nil
}

// Package logging adapts zap to storefront.Logger.
package logging

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-storefront"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by New
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var _ storefront.Logger = (*Logger)(nil)

// Logger forwards key value pairs to a zap SugaredLogger
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New builds a zap logger for level and format. Level accepts the zap names
// (debug, info, warn, error).
func New(level, format string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	config := zap.NewProductionConfig()
	switch format {
	case "", FormatJSON:
	case FormatConsole:
		config = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return Wrap(z), nil
}

// Wrap adapts an existing zap logger
func Wrap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{base: z, sugar: z.Sugar()}
}

// Nop discards everything
func Nop() *Logger {
	return Wrap(zap.NewNop())
}

// Named returns a child logger scoped to name
func (l *Logger) Named(name string) *Logger {
	return Wrap(l.base.Named(name))
}

// Zap exposes the underlying logger
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

func (l *Logger) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *Logger) Sync() {
	_ = l.base.Sync()
}

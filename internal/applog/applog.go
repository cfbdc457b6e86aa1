// Package applog provides the structured logger shared across the
// resolver, index builder, and CLI.
package applog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger's verbosity and output encoding.
type Config struct {
	Debug bool
	JSON  bool
}

// New builds a *zap.Logger per cfg. Production defaults to JSON
// encoding at info level; Debug switches to a human-readable console
// encoder at debug level.
func New(cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.JSON {
		zcfg.Encoding = "json"
	}
	return zcfg.Build()
}

// Nop returns a logger that discards everything, used as a default so
// callers never need a nil check.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Package logger builds the zap logger used by every component of the
// service. The mode switches between a human-readable development encoder
// and the JSON production encoder.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ModeDevelop    = "DEV"
	ModeProduction = "PROD"
)

// New constructs a zap logger for the given mode ("DEV" or "PROD") and
// level ("debug", "info", ...).
func New(mode, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	if mode == ModeDevelop {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = lvl
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

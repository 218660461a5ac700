// Package logging builds the zap logger shared by the client.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to stderr and to armazem.log inside dataDir.
// An unknown level falls back to warn.
func New(level, dataDir string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}

	outputs := []string{"stderr"}
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err == nil {
			outputs = append(outputs, filepath.Join(dataDir, "armazem.log"))
		}
	}

	cfg := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(lvl),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Nop returns a logger that discards everything; used by tests and as a fallback.
func Nop() *zap.Logger {
	return zap.NewNop()
}

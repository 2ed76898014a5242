// Package logging builds the single *zap.Logger that cmd/lite-edit
// passes to internal/fileindex: the file-index walker/watcher log
// through it rather than printing, using structured fields
// instead of formatted strings, grounded on the ambient logging stack
// the rest of this tree already exercises (internal/fileindex's
// *zap.Logger field).
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names the configurable verbosity, set from the TOML config
// (internal/config).
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a console-encoded logger writing to path (or stderr if path
// is empty, since stdout is the terminal host's drawing surface and must
// never be interleaved with log output). level controls verbosity.
func New(path string, level Level) (*zap.Logger, error) {
	var out zapcore.WriteSyncer
	if path == "" {
		out = zapcore.Lock(os.Stderr)
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = zapcore.Lock(f)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(cfg)

	core := zapcore.NewCore(encoder, out, level.zapLevel())
	return zap.New(core), nil
}

// Nop returns a logger that discards everything, used in tests and
// wherever a caller passes no logger (internal/fileindex.New already
// follows this "nil means Nop" convention).
func Nop() *zap.Logger { return zap.NewNop() }

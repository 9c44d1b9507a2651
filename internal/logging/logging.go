// Package logging provides the zap loggers used by the CLI and by the parser's
// information and error sinks.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		FunctionKey:  "func",
		EncodeTime:   zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
		LineEnding:   zapcore.DefaultLineEnding,
	}
}

// New creates a zap logger based on the verbose flag.
// If verbose is false, returns a no-op logger that discards all output.
// If verbose is true, returns a debug-level console logger that writes
// to stderr with timestamps, log levels, and caller information.
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)

	return zap.New(core, zap.AddCaller())
}

// NewSinks returns a logger that splits entries between two writers.
// Entries below error level go to info, error and above go to errw.
// With debug unset the info writer only receives warnings, so trace lines
// are dropped while duplicate-option warnings still show up.
func NewSinks(info, errw io.Writer, debug bool) *zap.Logger {
	infoMin := zapcore.WarnLevel
	if debug {
		infoMin = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	infoCore := zapcore.NewCore(
		enc,
		zapcore.Lock(zapcore.AddSync(info)),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= infoMin && l < zapcore.ErrorLevel
		}),
	)
	errCore := zapcore.NewCore(
		enc.Clone(),
		zapcore.Lock(zapcore.AddSync(errw)),
		zapcore.ErrorLevel,
	)

	return zap.New(zapcore.NewTee(infoCore, errCore)).Named("argmark")
}

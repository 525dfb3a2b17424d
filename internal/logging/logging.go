// Package logging builds the console logger used by the CLI.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Console levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// Levels lists the accepted console levels.
var Levels = []string{LevelNone, LevelNormal, LevelDebug}

// New returns a console logger: info (or debug) up to warnings go to
// stdout, errors to stderr.
func New(level string) (*zap.Logger, error) {
	return NewWithOutput(level,
		zapcore.Lock(os.Stdout), isTerminal(os.Stdout),
		zapcore.Lock(os.Stderr), isTerminal(os.Stderr))
}

// NewWithOutput is New with explicit streams.
func NewWithOutput(level string, out zapcore.WriteSyncer, outColor bool, errOut zapcore.WriteSyncer, errColor bool) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelNormal, "":
		lowest = zapcore.InfoLevel
	case LevelDebug:
		lowest = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (want one of none, normal, debug)", level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder(outColor), out, lowPriority),
		zapcore.NewCore(encoder(errColor), errOut, highPriority),
	)
	return zap.New(core), nil
}

func encoder(color bool) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Package logger provides opinionated logging for the folio server.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stdout. Debug enables
// debug-level output.
func New(debug bool) *zap.Logger {
	return NewWithOutput(debug, os.Stdout)
}

// NewWithOutput is New with the output stream parameterized for tests.
func NewWithOutput(debug bool, out io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(out),
		level,
	)

	return zap.New(core, zap.AddCaller())
}

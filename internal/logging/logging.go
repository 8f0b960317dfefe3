// Package logging builds the zap logger used for diagnostics.
//
// Records always go to the supplied writer (stderr in the CLI), never to
// stdout, which is reserved for the script the calling shell evaluates.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console-encoded logger writing to w.
// The level is warn, or debug when verbose is set.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(newEncoder(), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core).Named("condact")
}

// newEncoder creates the console encoder; timestamps are dropped because
// records are read interactively next to the prompt.
func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderCfg)
}

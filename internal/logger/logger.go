// Package logger provides the process-wide leveled logging facade.
//
// Components obtain a named logger via Named for structured key/value
// logging; SetLevel adjusts the minimum level of every logger handed out,
// past and future.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	root  = newRoot()
)

func newRoot() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		// The static production config cannot fail to build; fall back to
		// a no-op logger rather than panic during package init.
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}

// SetLevel changes the minimum level for all loggers, including named ones
// already handed out. Unknown levels leave the current level untouched.
func SetLevel(l string) {
	switch strings.ToUpper(l) {
	case "DEBUG":
		level.SetLevel(zapcore.DebugLevel)
	case "INFO":
		level.SetLevel(zapcore.InfoLevel)
	case "WARN":
		level.SetLevel(zapcore.WarnLevel)
	case "ERROR":
		level.SetLevel(zapcore.ErrorLevel)
	}
}

// Named returns a component-scoped logger for structured key/value logging.
func Named(component string) *zap.SugaredLogger {
	return root.Named(component)
}

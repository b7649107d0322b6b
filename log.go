package trellis

import (
	"go.uber.org/zap"
)

var Log *zap.Logger = initLog()

func initLog() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	return logger
}

// SetLog replaces the package logger, for callers who configure zap
// themselves.
func SetLog(logger *zap.Logger) {
	if logger != nil {
		Log = logger
	}
}

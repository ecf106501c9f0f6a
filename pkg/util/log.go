package util

import "go.uber.org/zap"

// log defaults to a no-op logger so library code and tests stay silent;
// cmd/aggbench installs a real logger at startup via SetLogger.
var log *zap.Logger = zap.NewNop()

func SetLogger(l *zap.Logger) {
	log = l
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

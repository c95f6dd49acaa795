package wafengine

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a *zap.Logger that writes colored level output to
// stdout and JSON records to a file, tee'd together exactly as the
// teacher's Middleware.Provision does. An empty logFilePath disables the
// file core and logs to stdout only.
//
// Adapted from the teacher's caddywaf.go Provision method.
func NewLogger(severity, logFilePath string) (*zap.Logger, error) {
	level := parseLevel(severity)

	consoleCfg := zap.NewProductionConfig()
	consoleCfg.EncoderConfig.EncodeTime = rfc3339TimeEncoder
	consoleCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg.EncoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	if logFilePath == "" {
		return zap.New(consoleCore), nil
	}

	fileSync, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.New(consoleCore), err
	}

	fileCfg := zap.NewProductionConfig()
	fileCfg.EncoderConfig.EncodeTime = rfc3339TimeEncoder
	fileCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileCfg.EncoderConfig),
		zapcore.AddSync(fileSync),
		zapcore.DebugLevel,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore)), nil
}

func parseLevel(severity string) zapcore.Level {
	switch strings.ToLower(severity) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func rfc3339TimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339))
}

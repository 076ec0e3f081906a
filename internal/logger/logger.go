package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new structured logger writing to stdout
func New(env string) (*zap.Logger, error) {
	return NewWithWriter(env, os.Stdout), nil
}

// NewWithWriter creates a logger writing to w. Production uses JSON at info
// level; every other environment uses a colored console encoder at debug level.
func NewWithWriter(env string, w io.Writer) *zap.Logger {
	return zap.New(
		newCore(env, zapcore.AddSync(w)),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	)
}

func newCore(env string, ws zapcore.WriteSyncer) zapcore.Core {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), ws, zapcore.InfoLevel)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), ws, zapcore.DebugLevel)
}

// NewWithDefaults creates a logger for the environment in SERVER_ENV
func NewWithDefaults() *zap.Logger {
	env := os.Getenv("SERVER_ENV")
	if env == "" {
		env = "development"
	}

	logger, err := New(env)
	if err != nil {
		// Fallback to basic logger
		logger, _ = zap.NewProduction()
	}

	return logger
}

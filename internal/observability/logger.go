// Package observability carries the ambient logging, metrics, and tracing
// stack every component in this module can opt into: structured zap
// logging, Prometheus counters/histograms, and an OpenTelemetry tracer
// provider.
package observability

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Logger wraps zap.Logger with context-aware field injection.
type Logger struct {
	*zap.Logger
}

// NewLogger builds a Logger configured for environment ("production" or
// anything else, treated as development).
func NewLogger(environment string) (*Logger, error) {
	var config zap.Config
	if environment == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		config.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}

// WithContext attaches the chi request id (when present) to the returned
// logger so every log line within one HTTP request correlates.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var fields []zap.Field
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if len(fields) == 0 {
		return l
	}
	return &Logger{l.Logger.With(fields...)}
}

// LogError logs err at Error level, attaching the kind as a structured
// field when err originates from this module's error type.
func (l *Logger) LogError(message string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	if e, ok := err.(*apperrors.Error); ok {
		fields = append(fields, zap.String("error_kind", string(e.Kind)))
	}
	fields = append(fields, zap.Error(err))
	l.Error(message, fields...)
}

// LogOperation times fn, logging its start/end at Debug and any failure at
// Error.
func LogOperation(ctx context.Context, logger *Logger, operation string, fn func() error) error {
	contextLogger := logger.WithContext(ctx)
	contextLogger.Debug("operation started", zap.String("operation", operation))

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if err != nil {
		contextLogger.LogError("operation failed", err,
			zap.String("operation", operation),
			zap.Duration("duration", duration))
		return err
	}

	contextLogger.Debug("operation completed",
		zap.String("operation", operation),
		zap.Duration("duration", duration))
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/analysis"
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

// LogOperation logs the outcome of an operation at a level derived from the error class
func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, duration time.Duration, err error, attrs ...slog.Attr) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsNotFound(err):
			status = "not_found"
			level = slog.LevelInfo
		case errors.Is(err, context.Canceled):
			level = slog.LevelWarn
			status = "canceled"
		}
	}

	attrs = append(attrs,
		slog.String("operation", operation),
		slog.String("status", status),
		slog.Duration("duration", duration),
	)

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		}
	}

	if requestID := utils.RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// LogCache logs cache hits and misses at debug level
func (l *ServiceLogger) LogCache(ctx context.Context, key string, hit bool) {
	if !l.config.EnableDebug {
		return
	}
	l.logger.LogAttrs(ctx, slog.LevelDebug, "Analytics cache lookup",
		slog.String("key", key),
		slog.Bool("hit", hit),
	)
}

// ===== ENGINE OBSERVER =====

// orphanLogger reports responses whose session is outside the analysed set
type orphanLogger struct {
	logger *slog.Logger
}

// NewOrphanLogger returns an analysis.Observer that logs skipped responses
func NewOrphanLogger(logger *slog.Logger) analysis.Observer {
	return &orphanLogger{logger: logger}
}

func (o *orphanLogger) OrphanedResponse(r analysis.Response) {
	o.logger.Warn("Skipping response with unknown session",
		"response_id", r.ID,
		"session_id", r.SessionID,
		"question_id", r.QuestionID)
}

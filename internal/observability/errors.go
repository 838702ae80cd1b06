package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"ruleofthree/internal/handlers"
)

// RecordError centralises error handling across all endpoints: records the
// error on the span, increments the error counter, logs with trace context
// and writes the JSON error response carrying the request ID. Client errors
// log at warn level.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, status int, body handlers.ErrorResponse, err error, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, body.Error)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.Int("status", status),
	))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.Int("status", status),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(body.Error, fields...)
	} else {
		logger.Warn(body.Error, fields...)
	}

	if body.RequestID == "" {
		body.RequestID = RequestIDFromContext(ctx)
	}
	handlers.WriteErrorResponse(w, status, body)
}

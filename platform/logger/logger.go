// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// PaymentVerified logs a successful payment verification for audit.
func (l *Logger) PaymentVerified(reference string, amountKobo int64) {
	l.Info("payment_verified",
		slog.String("reference", reference),
		slog.Int64("amount_kobo", amountKobo),
	)
}

// PaymentRejected logs a failed payment verification for audit. Both amounts
// are recorded server-side; they are never echoed to the client.
func (l *Logger) PaymentRejected(reference, reason string, expectedKobo, recordedKobo int64, processorStatus string) {
	l.Warn("payment_rejected",
		slog.String("reference", reference),
		slog.String("reason", reason),
		slog.Int64("expected_kobo", expectedKobo),
		slog.Int64("recorded_kobo", recordedKobo),
		slog.String("processor_status", processorStatus),
	)
}

// GatewayError logs an upstream processor failure, distinct from an integrity
// rejection so operators can tell outage from attack.
func (l *Logger) GatewayError(reference string, err error) {
	l.Error("payment_gateway_error",
		slog.String("reference", reference),
		slog.String("error", err.Error()),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

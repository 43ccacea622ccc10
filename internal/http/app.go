// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"storefront_backend/internal/events"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.CartConfig
}

// HealthChecker is the minimal surface the health endpoint needs.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App carries everything the router needs, assembled by main.go.
type App struct {
	// Config holds HTTP and session settings.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health backs the readiness check, normally a DB ping.
	Health HealthChecker
	// EventBus is the domain event bus shared across modules.
	EventBus events.Bus
	// Modules are the HTTP-facing domain modules to register.
	Modules []Module
}

// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"storefront_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a bounded context that owns a set of HTTP routes. Each domain
// module implements it so the router never needs to know individual endpoints.
type Module interface {
	// Name identifies the module in logs.
	Name() string
	// RegisterRoutes mounts the module's routes using the shared RouterContext.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles the route groups and shared middleware a module can
// mount on, so RegisterRoutes takes one argument instead of many.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Session applies the session cookie middleware; cart and checkout
	// routes hang off this group so every request carries a session ID.
	Session *gin.RouterGroup
	// VerifyRateLimiter is the stricter rate limiter for payment verification.
	VerifyRateLimiter *httpkit.VerifyRateLimiter
}

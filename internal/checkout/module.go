// Package checkout provides the checkout bounded context module: order
// totals and payment verification.
package checkout

import (
	cartservice "storefront_backend/internal/cart/service"
	catalogrepo "storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/checkout/client"
	"storefront_backend/internal/checkout/handler"
	"storefront_backend/internal/checkout/service"
	"storefront_backend/internal/events"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

// Config combines the configuration interfaces checkout needs.
type Config interface {
	config.PaystackConfig
	config.CheckoutConfig
}

// Module is the checkout bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the checkout module with all its dependencies.
func NewModule(cfg Config, carts *cartservice.Service, catalog catalogrepo.Repository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	processor := client.NewPaystack(cfg)
	svc := service.NewService(processor, carts, catalog, bus, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "checkout"
}

// RegisterRoutes mounts checkout routes on the session-scoped router group.
// The verification endpoint gets its own stricter per-IP rate limit.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Session.Group("/checkout"), ctx.VerifyRateLimiter.RateLimit())
}

var _ apphttp.Module = (*Module)(nil)

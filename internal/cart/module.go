// Package cart provides the shopping cart bounded context module.
package cart

import (
	"time"

	"storefront_backend/internal/cart/handler"
	"storefront_backend/internal/cart/service"
	"storefront_backend/internal/cart/store"
	catalogrepo "storefront_backend/internal/catalog/repository"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// Module is the cart bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates and initializes the cart module with all its dependencies.
func NewModule(client *redis.Client, ttl time.Duration, catalog catalogrepo.Repository, val *validator.Validator, log *logger.Logger) *Module {
	st := store.NewRedisStore(client, ttl)
	svc := service.NewService(st, catalog, log)
	h := handler.New(svc, val)

	return &Module{handler: h, svc: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Service returns the cart service so checkout can read and clear carts.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts cart routes on the session-scoped router group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Session.Group("/cart"))
}

var _ apphttp.Module = (*Module)(nil)

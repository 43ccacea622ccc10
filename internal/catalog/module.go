// Package catalog provides the product catalog bounded context module.
package catalog

import (
	"storefront_backend/internal/catalog/handler"
	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/service"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    repository.Repository
	svc     *service.Service
}

// NewModule creates and initializes the catalog module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo, svc: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Repository returns the product repository for use by other modules.
// The cart and checkout modules resolve prices and adjust stock through it.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/products"))
}

var _ apphttp.Module = (*Module)(nil)

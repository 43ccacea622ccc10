package handler

import (
	"net/http"

	"storefront_backend/internal/catalog/service"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc       *service.Service
	validator *validator.Validator
}

func New(svc *service.Service, v *validator.Validator) *Handler {
	return &Handler{svc: svc, validator: v}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:slug", h.GetBySlug)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	resp, err := h.svc.ListProducts(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	resp, err := h.svc.GetProduct(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

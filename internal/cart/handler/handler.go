package handler

import (
	"net/http"

	"storefront_backend/internal/cart/service"
	"storefront_backend/internal/cart/transport"
	"storefront_backend/internal/http/middleware"
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
	rg.GET("", h.Get)
	rg.POST("/items", h.AddItem)
	rg.PATCH("/items/:variantId", h.UpdateItem)
	rg.DELETE("/items/:variantId", h.RemoveItem)
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), middleware.SessionID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	resp, err := h.svc.AddItem(c.Request.Context(), middleware.SessionID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req transport.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	resp, err := h.svc.UpdateItem(c.Request.Context(), middleware.SessionID(c), c.Param("variantId"), req.Quantity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	resp, err := h.svc.RemoveItem(c.Request.Context(), middleware.SessionID(c), c.Param("variantId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

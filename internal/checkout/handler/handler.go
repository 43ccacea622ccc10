package handler

import (
	"context"
	"net/http"

	"storefront_backend/internal/checkout/service"
	"storefront_backend/internal/checkout/transport"
	"storefront_backend/internal/http/middleware"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc       *service.Service
	validator *validator.Validator
}

func New(svc *service.Service, v *validator.Validator) *Handler {
	return &Handler{svc: svc, validator: v}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, verifyLimit gin.HandlerFunc) {
	rg.GET("/summary", h.Summary)
	rg.POST("/verify", verifyLimit, h.Verify)
}

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context(), middleware.SessionID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Verify checks a payment claim. The reference and amount are validated
// before the processor is contacted: a request missing either never leaves
// this process. The client only ever learns verified or not; specifics stay
// in the server log.
func (h *Handler) Verify(c *gin.Context) {
	var req transport.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, transport.VerifyPaymentResponse{
			Success: false, Message: "reference and amount are required",
		})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, transport.VerifyPaymentResponse{
			Success: false, Message: "reference and amount are required",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), service.VerifyTimeout)
	defer cancel()

	resp, err := h.svc.VerifyPayment(ctx, middleware.SessionID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, transport.VerifyPaymentResponse{
			Success: false, Message: "payment verification failed, please contact support",
		})
		return
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, resp)
}

// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"storefront_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every error body uses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes payload with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error writes an ErrorResponse with the given status code.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// OK writes payload with status 200.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// HandleError translates a service error into an HTTP response and reports
// whether anything was written. Typed *apperr.Error values map through their
// Kind; anything else becomes a 400.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{Error: domainErr.Message})
		return true
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	return true
}

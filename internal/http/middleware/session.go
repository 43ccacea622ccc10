// Package middleware provides HTTP middleware shared by the storefront routes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionKey is the gin context key the session ID is stored under.
const sessionKey = "sessionID"

// cookieMaxAge keeps the anonymous session cookie alive for 7 days,
// matching the cart TTL in the store.
const cookieMaxAge = 7 * 24 * 60 * 60

// Session identifies the anonymous shopper. It reads the session cookie and,
// when absent, mints a new UUID and sets the cookie on the response. Every
// request passing through this middleware has a session ID in the context.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the session ID set by the Session middleware.
func SessionID(c *gin.Context) string {
	id, _ := c.Get(sessionKey)
	s, _ := id.(string)
	return s
}

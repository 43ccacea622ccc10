// Package router assembles the Gin engine from the application modules.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/http/middleware"
	"storefront_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the HTTP engine: global middleware, health endpoint, and the
// routes of every registered module.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	// A wrong verb on a known route must answer 405, not fall through to 404.
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		httpkit.Error(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	engine.NoRoute(func(c *gin.Context) {
		httpkit.Error(c, http.StatusNotFound, "not found")
	})

	engine.GET("/api/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if app.Health != nil {
			if err := app.Health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	session := v1.Group("")
	session.Use(middleware.Session(app.Config.GetSessionCookieName()))

	routerCtx := &apphttp.RouterContext{
		Engine:            engine,
		V1:                v1,
		Session:           session,
		VerifyRateLimiter: httpkit.NewVerifyRateLimiter(app.Logger),
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(routerCtx)
		app.Logger.Info("registered module routes", "module", m.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cors.New(cfg)
}

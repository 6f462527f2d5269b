package http

import (
	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/auth"
)

// RouterConfig carries all dependencies the router needs, keeping the
// constructor signature stable as wiring grows.
type RouterConfig struct {
	SessionManager *auth.SessionManager
	AuthController *auth.Controller
	Collections    *CollectionsController
	Books          *BooksController
	CSRFSecret     []byte
	SecureCookies  bool
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is layered on
	// top of CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	router.Use(cfg.SessionManager.SessionLoadSave())

	router.GET("/health", HealthCheck)
	cfg.AuthController.RegisterRoutes(router)

	// Everything under /api requires a signed-in session; the middleware
	// places the acting username into the context for the controllers.
	api := router.Group("/api")
	api.Use(auth.RequireAuth(cfg.SessionManager))

	cfg.Collections.RegisterRoutes(api)
	cfg.Books.RegisterRoutes(api)

	return router
}

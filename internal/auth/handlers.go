package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/config"
	"github.com/readshelf/readshelf/internal/entities"
)

// AuditLogger records authentication events. Implemented by the audit
// repository; nil disables audit logging.
type AuditLogger interface {
	LogEvent(event *entities.AuditEvent) error
}

// Controller handles the login and logout endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
	audit          AuditLogger
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager, audit AuditLogger, cfg config.Auth) *Controller {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		audit:          audit,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
}

// Stop cleans up the rate limiter's background goroutine.
func (ac *Controller) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates credentials and establishes a session. Unknown usernames
// and wrong passwords produce the same response.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ip := c.ClientIP()

	if allowed, retryAfter := ac.rateLimiter.Allow(ip, req.Username); !allowed {
		c.Header("Retry-After", retryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
		return
	}

	ok, err := ac.service.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !ok {
		ac.rateLimiter.RecordFailure(ip, req.Username)
		ac.logAuthEvent(req.Username, ip, "login", entities.AuditStatusFailed)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	ac.rateLimiter.RecordSuccess(ip, req.Username)

	if err := ac.sessionManager.CreateSession(c.Request, req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ac.logAuthEvent(req.Username, ip, "login", entities.AuditStatusSuccess)
	c.JSON(http.StatusOK, gin.H{"message": "signed in", "username": req.Username})
}

// Logout destroys the current session.
func (ac *Controller) Logout(c *gin.Context) {
	username := ac.sessionManager.GetUsername(c.Request)

	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if username != "" {
		ac.logAuthEvent(username, c.ClientIP(), "logout", entities.AuditStatusSuccess)
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (ac *Controller) logAuthEvent(username, ip, action string, status entities.AuditStatus) {
	if ac.audit == nil {
		return
	}
	// Audit failures must not break the login flow
	_ = ac.audit.LogEvent(&entities.AuditEvent{
		Owner:     username,
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ip,
		Status:    status,
	})
}

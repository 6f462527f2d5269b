package auth

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readshelf/readshelf/internal/config"
)

func setupSessionRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_sessions_" + t.Name() + ".db"
	sqlDB, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)

	sm, err := NewSessionManager(sqlDB, config.Auth{
		SessionLifetime: time.Hour,
		SecureCookies:   false,
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(sm.SessionLoadSave())

	router.POST("/signin", func(c *gin.Context) {
		require.NoError(t, sm.CreateSession(c.Request, "alice"))
		c.JSON(http.StatusOK, gin.H{"message": "signed in"})
	})

	protected := router.Group("/api")
	protected.Use(RequireAuth(sm))
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetUsername(c)})
	})

	cleanup := func() {
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return router, cleanup
}

func TestRequireAuth_RejectsWithoutSession(t *testing.T) {
	router, cleanup := setupSessionRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_AllowsWithSessionCookie(t *testing.T) {
	router, cleanup := setupSessionRouter(t)
	defer cleanup()

	// Sign in and capture the session cookie written by the adapter
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signin", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected a session cookie to be set")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/whoami", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

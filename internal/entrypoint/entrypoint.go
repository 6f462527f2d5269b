package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/config"
	"github.com/readshelf/readshelf/internal/database"
	"github.com/readshelf/readshelf/internal/database/audit"
	"github.com/readshelf/readshelf/internal/database/books"
	"github.com/readshelf/readshelf/internal/database/collections"
	"github.com/readshelf/readshelf/internal/database/ownership"
	http_controllers "github.com/readshelf/readshelf/internal/http"
	"github.com/readshelf/readshelf/internal/scheduler"
	"github.com/readshelf/readshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting readshelf v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}

	// Session secret: auto-generate when unset (sessions won't survive a
	// restart in that case)
	sessionSecret := cfg.Auth.SessionSecret
	if sessionSecret == "" {
		sessionSecret, err = auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate session secret: %v", err)
		}
		log.Printf("AUTH_SESSION_SECRET not set, generated an ephemeral one")
	}
	csrfSecret, err := hex.DecodeString(sessionSecret)
	if err != nil || len(csrfSecret) != 32 {
		log.Fatalf("AUTH_SESSION_SECRET must be 32 hex-encoded bytes")
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	auditRepo := audit.NewRepository(db.DB)
	authService := auth.NewService(db.DB, cfg.Auth)
	authController := auth.NewController(authService, sessionManager, auditRepo, cfg.Auth)
	defer authController.Stop()

	verifier := ownership.NewVerifier(db.DB)
	collectionRepo := collections.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	collectionsController := http_controllers.NewCollectionsController(collectionRepo, bookRepo, verifier, auditRepo)
	booksController := http_controllers.NewBooksController(bookRepo, verifier, auditRepo)

	// Background task queue + audit retention schedule
	var taskClient *tasks.Client
	var auditScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, cfg.Tasks)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditRepo))

		taskCtx, taskCancel := context.WithCancel(context.Background())
		defer taskCancel()
		go taskClient.Start(taskCtx)

		auditScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit)
		if err := auditScheduler.Start(); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		SessionManager: sessionManager,
		AuthController: authController,
		Collections:    collectionsController,
		Books:          booksController,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if auditScheduler != nil {
			auditScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskClient.Close()
		}
	})
}

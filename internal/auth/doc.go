// Package auth provides credential checking and session handling for the
// application. Every authenticated request carries a username in its session;
// that username is the sole tenancy boundary and is passed explicitly into
// each repository call.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//
// # Usage
//
//	service := auth.NewService(db.DB, cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessions.SessionLoadSave())
//	api.Use(auth.RequireAuth(sessions))
//
// Extract the acting user in handlers:
//
//	username := auth.GetUsername(c)
package auth

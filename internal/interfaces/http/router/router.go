// Package router wires handlers and middleware into the gin engine.
package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the handlers the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Contact   *handler.ContactHandler
	Project   *handler.ProjectHandler
	Dashboard *handler.DashboardHandler
}

// Dependencies holds everything route setup needs beyond the handlers
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	// UserActive re-checks the user record on authenticated requests
	UserActive func(ctx context.Context, userID string) (bool, error)
	Handlers   Handlers
}

// New builds the gin engine with the full route table:
//
//	GET  /api/health, /api/ping          public
//	POST /api/contact                    public, rate limited
//	GET  /api/projects...                public reads
//	POST /api/auth/login                 public
//	/api/auth/*                          authenticated
//	/api/admin/*                         authenticated + admin role
//	/uploads/projects/*                  static images (local backend)
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger, cfg.Upload.PublicPath, "/health", "/ping"),
		logger.Recovery(deps.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow),
		))
	}

	authRequired := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		UserActive:     deps.UserActive,
		Logger:         deps.Logger,
	})

	api := engine.Group("/api")
	{
		deps.Handlers.System.RegisterRoutes(api)
		deps.Handlers.Auth.RegisterRoutes(api, authRequired)
		deps.Handlers.Contact.RegisterPublicRoutes(api, contactRateLimit(cfg))
		deps.Handlers.Project.RegisterPublicRoutes(api)

		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireAdmin())
		{
			deps.Handlers.Auth.RegisterAdminRoutes(admin)
			deps.Handlers.Contact.RegisterAdminRoutes(admin)
			deps.Handlers.Project.RegisterAdminRoutes(admin, uploadLimit(cfg))
			if deps.Handlers.Dashboard != nil {
				deps.Handlers.Dashboard.RegisterRoutes(admin)
			}
		}
	}

	// Serve uploaded images when they live on local disk
	if cfg.Upload.Backend == "" || cfg.Upload.Backend == "local" {
		publicPath := cfg.Upload.PublicPath
		if publicPath == "" {
			publicPath = "/uploads/projects"
		}
		localDir := cfg.Upload.LocalDir
		if localDir == "" {
			localDir = "uploads/projects"
		}
		engine.Static(publicPath, localDir)
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}

// contactRateLimit throttles public contact submissions per IP
func contactRateLimit(cfg *config.Config) gin.HandlerFunc {
	if !cfg.HTTP.ContactRateLimitEnabled {
		return nil
	}

	window := cfg.HTTP.ContactRateLimitWindow
	if window <= 0 {
		window = 15 * time.Minute
	}
	max := cfg.HTTP.ContactRateLimitMax
	if max <= 0 {
		max = 5
	}

	return middleware.RateLimit(middleware.NewRateLimiter(max, window))
}

// uploadLimit caps multipart bodies; image size is validated again in the
// service, this only bounds the request itself.
func uploadLimit(cfg *config.Config) gin.HandlerFunc {
	if cfg.Upload.MaxFileSize <= 0 {
		return nil
	}
	// Leave headroom for the non-file form fields
	return middleware.BodyLimit(cfg.Upload.MaxFileSize + 1<<20)
}

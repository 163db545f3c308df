package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contactapp "github.com/portfolio/backend/internal/application/contact"
	identityapp "github.com/portfolio/backend/internal/application/identity"
	showcaseapp "github.com/portfolio/backend/internal/application/showcase"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/mailer"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/infrastructure/storage"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
	"github.com/portfolio/backend/internal/interfaces/http/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//	@title			Portfolio Backend API
//	@version		1.0
//	@description	Personal portfolio website backend: public project showcase and contact form, plus an authenticated admin console.

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting portfolio backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database, with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis when configured, in-memory otherwise.
	// The in-memory fallback is fine for a single instance but loses
	// revocations on restart.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Token blacklist running in-memory")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)

	// Project image storage (local disk or S3)
	imageStorage, err := storage.New(&cfg.Upload, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	log.Info("Image storage ready", zap.String("backend", cfg.Upload.Backend))

	// Contact notifications are best-effort: without an SMTP host the
	// service runs with a no-op notifier and replies are rejected.
	var notifier contactapp.Notifier = contactapp.NopNotifier{}
	if cfg.SMTP.Host != "" {
		smtpNotifier, err := mailer.NewSMTPNotifier(&cfg.SMTP, log)
		if err != nil {
			log.Fatal("Failed to initialize SMTP notifier", zap.Error(err))
		}
		notifier = smtpNotifier
		log.Info("SMTP notifier ready", zap.String("host", cfg.SMTP.Host))
	} else {
		log.Warn("SMTP host not configured, contact notifications disabled")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	contactService := contactapp.NewContactService(contactRepo, notifier, log)
	projectService := showcaseapp.NewProjectService(projectRepo, imageStorage, showcaseapp.ProjectServiceConfig{
		MaxImageSize: cfg.Upload.MaxFileSize,
	}, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		UserActive: func(ctx context.Context, userID string) (bool, error) {
			id, err := uuid.Parse(userID)
			if err != nil {
				return false, nil
			}
			user, err := userRepo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return false, nil
				}
				return false, err
			}
			return user.IsActive, nil
		},
		Handlers: router.Handlers{
			System:    handler.NewSystemHandler(db.Ping),
			Auth:      handler.NewAuthHandler(authService),
			Contact:   handler.NewContactHandler(contactService),
			Project:   handler.NewProjectHandler(projectService),
			Dashboard: handler.NewDashboardHandler(authService, contactService),
		},
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

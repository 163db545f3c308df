package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/portfolio/backend/internal/domain/identity"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

// migrate applies the schema and optionally seeds the initial admin
// account. Commands:
//
//	up     run GORM auto-migration for all tables
//	seed   create the admin user from the [admin] config section
//	all    up followed by seed
func main() {
	var skipSeed bool
	flag.BoolVar(&skipSeed, "skip-seed", false, "Do not create the admin user")
	flag.Parse()

	command := "all"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch command {
	case "up":
		runMigrations(db, log)
	case "seed":
		seedAdmin(ctx, db, cfg, log)
	case "all":
		runMigrations(db, log)
		if !skipSeed {
			seedAdmin(ctx, db, cfg, log)
		}
	default:
		fmt.Fprintln(os.Stderr, "Unknown command:", command)
		fmt.Fprintln(os.Stderr, "Usage: migrate [-skip-seed] [up|seed|all]")
		os.Exit(1)
	}
}

func runMigrations(db *persistence.Database, log *zap.Logger) {
	log.Info("Running migrations")

	err := db.DB.AutoMigrate(
		&models.UserModel{},
		&models.ContactModel{},
		&models.ProjectModel{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migrations applied")
}

// seedAdmin creates the admin account once. Re-running against a
// seeded database is a no-op.
func seedAdmin(ctx context.Context, db *persistence.Database, cfg *config.Config, log *zap.Logger) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Warn("Admin email or password not configured, skipping seed")
		return
	}

	userRepo := persistence.NewGormUserRepository(db.DB)

	exists, err := userRepo.ExistsByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		log.Fatal("Failed to check for existing admin", zap.Error(err))
	}
	if exists {
		log.Info("Admin user already exists, skipping seed", zap.String("email", cfg.Admin.Email))
		return
	}

	name := cfg.Admin.Name
	if name == "" {
		name = "Administrator"
	}

	admin, err := identity.NewAdmin(cfg.Admin.Email, cfg.Admin.Password, name)
	if err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("Failed to save admin user", zap.Error(err))
	}

	log.Info("Admin user created", zap.String("email", cfg.Admin.Email))
}

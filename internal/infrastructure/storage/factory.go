package storage

import (
	"fmt"

	showcaseapp "github.com/portfolio/backend/internal/application/showcase"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New selects the image storage backend from configuration.
func New(cfg *config.UploadConfig, logger *zap.Logger) (showcaseapp.ImageStorage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalImageStorage(cfg, logger)
	case "s3":
		return NewS3ImageStorage(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown upload backend: %q", cfg.Backend)
	}
}

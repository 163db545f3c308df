// Package storage provides image storage backends for project uploads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	showcaseapp "github.com/portfolio/backend/internal/application/showcase"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure LocalImageStorage implements ImageStorage
var _ showcaseapp.ImageStorage = (*LocalImageStorage)(nil)

// LocalImageStorage writes images to a directory on disk. The directory
// is expected to be served statically under publicPath.
type LocalImageStorage struct {
	baseDir    string
	publicPath string
	logger     *zap.Logger
}

// NewLocalImageStorage creates the base directory if it does not exist.
func NewLocalImageStorage(cfg *config.UploadConfig, logger *zap.Logger) (*LocalImageStorage, error) {
	if cfg == nil {
		return nil, errors.New("upload configuration is required")
	}

	baseDir := cfg.LocalDir
	if baseDir == "" {
		baseDir = "uploads/projects"
	}
	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = "/uploads/projects"
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &LocalImageStorage{
		baseDir:    baseDir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		logger:     logger,
	}, nil
}

// Save writes the image under a generated name and returns its public URL.
func (s *LocalImageStorage) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name := objectName(filename)
	dst := filepath.Join(s.baseDir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Debug("Stored project image",
		zap.String("file", name),
		zap.Int64("bytes", written),
	)

	return s.publicPath + "/" + name, nil
}

// Remove deletes the file behind a public URL. URLs outside the
// configured public path, and files that are already gone, are ignored.
func (s *LocalImageStorage) Remove(ctx context.Context, publicURL string) error {
	name, ok := strings.CutPrefix(publicURL, s.publicPath+"/")
	if !ok || name == "" {
		return nil
	}

	// Reject anything that escapes the base directory.
	if name != path.Base(name) {
		return nil
	}

	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

// objectName builds a unique storage name keeping the original extension.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 10 {
		ext = ".bin"
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

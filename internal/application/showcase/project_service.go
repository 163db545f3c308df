package showcase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/domain/showcase"
	"go.uber.org/zap"
)

// ProjectServiceConfig contains configuration for the project service
type ProjectServiceConfig struct {
	MaxImageSize int64 // in bytes
}

// DefaultProjectServiceConfig returns default configuration
func DefaultProjectServiceConfig() ProjectServiceConfig {
	return ProjectServiceConfig{
		MaxImageSize: 5 << 20, // 5MB
	}
}

// ProjectService handles the portfolio catalog
type ProjectService struct {
	projectRepo showcase.ProjectRepository
	storage     ImageStorage
	config      ProjectServiceConfig
	logger      *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo showcase.ProjectRepository, storage ImageStorage, config ProjectServiceConfig, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		storage:     storage,
		config:      config,
		logger:      logger,
	}
}

// ListPublished returns publicly visible projects, optionally filtered by category
func (s *ProjectService) ListPublished(ctx context.Context, category string) ([]ProjectInfo, error) {
	if category != "" && !showcase.IsValidCategory(showcase.Category(category)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Please select a valid project category")
	}

	projects, err := s.projectRepo.ListPublished(ctx, showcase.Category(category))
	if err != nil {
		s.logger.Error("Failed to list published projects", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load projects")
	}

	return toProjectInfos(projects), nil
}

// ListFeatured returns the featured projects, capped at the configured limit
func (s *ProjectService) ListFeatured(ctx context.Context) ([]ProjectInfo, error) {
	projects, err := s.projectRepo.ListFeatured(ctx, showcase.MaxFeatured)
	if err != nil {
		s.logger.Error("Failed to list featured projects", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load featured projects")
	}

	return toProjectInfos(projects), nil
}

// GetPublished returns a single published project and counts the view
func (s *ProjectService) GetPublished(ctx context.Context, id uuid.UUID) (*ProjectInfo, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}
	if !p.IsPublished() {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if err := s.projectRepo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("Failed to count project view", zap.String("project_id", id.String()), zap.Error(err))
	} else {
		p.Views++
	}

	info := toProjectInfo(p)
	return &info, nil
}

// Like increments a published project's like counter
func (s *ProjectService) Like(ctx context.Context, id uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Project not found")
	}
	if !p.IsPublished() {
		return shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if err := s.projectRepo.IncrementLikes(ctx, id); err != nil {
		s.logger.Error("Failed to count project like", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to like project")
	}

	return nil
}

// View counts a view for a published project without returning it.
// Used by clients that render from a cached listing.
func (s *ProjectService) View(ctx context.Context, id uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Project not found")
	}
	if !p.IsPublished() {
		return shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if err := s.projectRepo.IncrementViews(ctx, id); err != nil {
		s.logger.Error("Failed to count project view", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to record view")
	}

	return nil
}

// List returns a filtered page of projects for the admin console
func (s *ProjectService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Status != "" && !showcase.IsValidStatus(showcase.Status(input.Status)) {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be one of: draft, published, archived")
	}
	if input.Category != "" && !showcase.IsValidCategory(showcase.Category(input.Category)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Please select a valid project category")
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := s.projectRepo.List(ctx, showcase.Filter{
		Status:   showcase.Status(input.Status),
		Category: showcase.Category(input.Category),
		Search:   input.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load projects")
	}

	return &ListResult{
		Projects:   toProjectInfos(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Get returns a single project regardless of status
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*ProjectInfo, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	info := toProjectInfo(p)
	return &info, nil
}

// Create validates and stores a new project.
// An uploaded file takes precedence over a provided image URL.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*ProjectInfo, error) {
	imageURL, err := s.resolveImage(ctx, input.Image, input.ImageURL)
	if err != nil {
		return nil, err
	}

	p, err := showcase.NewProject(
		input.Title,
		input.ShortDescription,
		input.Description,
		showcase.Category(input.Category),
		showcase.Difficulty(input.Difficulty),
		s.parseTechnologies(input.Technologies),
		imageURL,
		input.LiveDemoURL,
		input.GithubURL,
		input.CompletionDate,
	)
	if err != nil {
		return nil, err
	}

	if input.Featured {
		count, err := s.projectRepo.CountFeatured(ctx)
		if err != nil {
			s.logger.Error("Failed to count featured projects", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create project")
		}
		if count >= showcase.MaxFeatured {
			return nil, shared.NewDomainError("FEATURED_LIMIT", "At most 3 projects can be featured")
		}
		p.SetFeatured(true)
	}

	if err := s.projectRepo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to store project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create project")
	}

	s.logger.Info("Project created",
		zap.String("project_id", p.GetID().String()),
		zap.String("title", p.Title))

	info := toProjectInfo(p)
	return &info, nil
}

// Update replaces the editable fields of a project
func (s *ProjectService) Update(ctx context.Context, input UpdateProjectInput) (*ProjectInfo, error) {
	p, err := s.projectRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if input.Image != nil || input.ImageURL != "" {
		imageURL, err := s.resolveImage(ctx, input.Image, input.ImageURL)
		if err != nil {
			return nil, err
		}
		old := p.ImageURL
		if err := p.SetImage(imageURL); err != nil {
			return nil, err
		}
		if old != "" && old != imageURL {
			if err := s.storage.Remove(ctx, old); err != nil {
				s.logger.Warn("Failed to remove replaced project image", zap.String("url", old), zap.Error(err))
			}
		}
	}

	if err := p.Update(
		input.Title,
		input.ShortDescription,
		input.Description,
		showcase.Category(input.Category),
		showcase.Difficulty(input.Difficulty),
		s.parseTechnologies(input.Technologies),
		input.LiveDemoURL,
		input.GithubURL,
		input.CompletionDate,
	); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
	}

	s.logger.Info("Project updated", zap.String("project_id", input.ID.String()))

	info := toProjectInfo(p)
	return &info, nil
}

// Delete permanently removes a project and its stored image
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete project", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete project")
	}

	if p.ImageURL != "" {
		if err := s.storage.Remove(ctx, p.ImageURL); err != nil {
			s.logger.Warn("Failed to remove project image", zap.String("url", p.ImageURL), zap.Error(err))
		}
	}

	s.logger.Info("Project deleted", zap.String("project_id", id.String()))

	return nil
}

// UpdateStatus moves a project to a new visibility state
func (s *ProjectService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*ProjectInfo, error) {
	p, err := s.projectRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if err := p.SetStatus(showcase.Status(input.Status)); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update project status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
	}

	info := toProjectInfo(p)
	return &info, nil
}

// SetFeatured toggles the featured flag, enforcing the featured cap
func (s *ProjectService) SetFeatured(ctx context.Context, input SetFeaturedInput) (*ProjectInfo, error) {
	p, err := s.projectRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}

	if input.Featured && !p.Featured {
		count, err := s.projectRepo.CountFeatured(ctx)
		if err != nil {
			s.logger.Error("Failed to count featured projects", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
		}
		if count >= showcase.MaxFeatured {
			return nil, shared.NewDomainError("FEATURED_LIMIT", "At most 3 projects can be featured")
		}
	}

	p.SetFeatured(input.Featured)

	if err := s.projectRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update featured flag", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
	}

	info := toProjectInfo(p)
	return &info, nil
}

// UpdateOrder applies new sort positions to a batch of projects
func (s *ProjectService) UpdateOrder(ctx context.Context, entries []OrderEntry) error {
	for _, entry := range entries {
		p, err := s.projectRepo.FindByID(ctx, entry.ID)
		if err != nil {
			return shared.NewDomainError("NOT_FOUND", "Project not found")
		}

		p.SetSortOrder(entry.SortOrder)

		if err := s.projectRepo.Update(ctx, p); err != nil {
			s.logger.Error("Failed to update project order",
				zap.String("project_id", entry.ID.String()),
				zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to reorder projects")
		}
	}

	return nil
}

// resolveImage stores an uploaded file or passes through a provided URL.
// The file wins when both are present.
func (s *ProjectService) resolveImage(ctx context.Context, upload *ImageUpload, imageURL string) (string, error) {
	if upload == nil {
		return imageURL, nil
	}

	if upload.Size > s.config.MaxImageSize {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Image must be 5MB or smaller")
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Only image files are allowed")
	}

	url, err := s.storage.Save(ctx, upload.Filename, upload.ContentType, upload.Reader, upload.Size)
	if err != nil {
		s.logger.Error("Failed to store project image", zap.Error(err))
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to store project image")
	}

	return url, nil
}

// parseTechnologies decodes a JSON array of strings. Malformed input
// falls back to an empty list and is logged rather than rejected.
func (s *ProjectService) parseTechnologies(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var technologies []string
	if err := json.Unmarshal([]byte(raw), &technologies); err != nil {
		s.logger.Warn("Malformed technologies payload, storing empty list", zap.Error(err))
		return []string{}
	}

	return technologies
}

func toProjectInfos(projects []*showcase.Project) []ProjectInfo {
	infos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, toProjectInfo(p))
	}
	return infos
}

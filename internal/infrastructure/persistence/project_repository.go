package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/domain/showcase"
	"github.com/portfolio/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements showcase.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create stores a new project
func (r *GormProjectRepository) Create(ctx context.Context, p *showcase.Project) error {
	model := models.ProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing project
func (r *GormProjectRepository) Update(ctx context.Context, p *showcase.Project) error {
	model := models.ProjectModelFromDomain(p)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete permanently removes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*showcase.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a filtered, paginated slice of projects for the admin console
func (r *GormProjectRepository) List(ctx context.Context, filter showcase.Filter) (*shared.Paginated[*showcase.Project], error) {
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.ProjectModel
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.
		Order("sort_order ASC, created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(toDomainProjects(rows), total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListPublished returns publicly visible projects in display order
func (r *GormProjectRepository) ListPublished(ctx context.Context, category showcase.Category) ([]*showcase.Project, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", showcase.StatusPublished)

	if category != "" {
		query = query.Where("category = ?", category)
	}

	var rows []models.ProjectModel
	if err := query.
		Order("sort_order ASC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return toDomainProjects(rows), nil
}

// ListFeatured returns published featured projects, capped at limit
func (r *GormProjectRepository) ListFeatured(ctx context.Context, limit int) ([]*showcase.Project, error) {
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND featured = ?", showcase.StatusPublished, true).
		Order("sort_order ASC, created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return toDomainProjects(rows), nil
}

// CountFeatured counts projects currently flagged as featured
func (r *GormProjectRepository) CountFeatured(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("featured = ?", true).
		Count(&count).Error
	return count, err
}

// IncrementViews atomically bumps the view counter
func (r *GormProjectRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementLikes atomically bumps the like counter
func (r *GormProjectRepository) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainProjects(rows []models.ProjectModel) []*showcase.Project {
	projects := make([]*showcase.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].ToDomain())
	}
	return projects
}

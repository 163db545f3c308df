package showcase

import (
	"context"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/shared"
)

// Filter narrows project listing queries
type Filter struct {
	Status   Status
	Category Category
	Featured *bool
	Search   string
	Page     int
	PageSize int
}

// ProjectRepository defines the persistence interface for portfolio projects
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, filter Filter) (*shared.Paginated[*Project], error)
	ListPublished(ctx context.Context, category Category) ([]*Project, error)
	ListFeatured(ctx context.Context, limit int) ([]*Project, error)
	CountFeatured(ctx context.Context) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementLikes(ctx context.Context, id uuid.UUID) error
}

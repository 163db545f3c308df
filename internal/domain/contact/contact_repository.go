package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/shared"
)

// Filter narrows admin listing queries
type Filter struct {
	Status   Status
	Search   string
	Page     int
	PageSize int
}

// StatusCounts aggregates contacts by status for the dashboard
type StatusCounts struct {
	Total    int64
	New      int64
	Read     int64
	Replied  int64
	Archived int64
}

// ContactRepository defines the persistence interface for contact submissions
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	List(ctx context.Context, filter Filter) (*shared.Paginated[*Contact], error)
	Recent(ctx context.Context, limit int) ([]*Contact, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}

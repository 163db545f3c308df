package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/contact"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContactRepository implements contact.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create stores a new contact submission
func (r *GormContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	model := models.ContactModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing contact
func (r *GormContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	model := models.ContactModelFromDomain(c)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a contact by ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a filtered, paginated slice of contacts, newest first
func (r *GormContactRepository) List(ctx context.Context, filter contact.Filter) (*shared.Paginated[*contact.Contact], error) {
	query := r.db.WithContext(ctx).Model(&models.ContactModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR message ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.ContactModel
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	contacts := make([]*contact.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, rows[i].ToDomain())
	}

	page := shared.NewPaginated(contacts, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Recent returns the latest submissions, newest first
func (r *GormContactRepository) Recent(ctx context.Context, limit int) ([]*contact.Contact, error) {
	var rows []models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("status <> ?", string(contact.StatusArchived)).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	contacts := make([]*contact.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, rows[i].ToDomain())
	}
	return contacts, nil
}

// CountByStatus aggregates contacts by status
func (r *GormContactRepository) CountByStatus(ctx context.Context) (*contact.StatusCounts, error) {
	type statusCount struct {
		Status contact.Status
		Count  int64
	}

	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.ContactModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := &contact.StatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case contact.StatusNew:
			counts.New = row.Count
		case contact.StatusRead:
			counts.Read = row.Count
		case contact.StatusReplied:
			counts.Replied = row.Count
		case contact.StatusArchived:
			counts.Archived = row.Count
		}
	}

	return counts, nil
}

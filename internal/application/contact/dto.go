package contact

import (
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/contact"
)

// SubmitInput contains the input for a public contact submission
type SubmitInput struct {
	Name        string
	Email       string
	ProjectType string
	Message     string
	IPAddress   string
	UserAgent   string
}

// SubmitResult acknowledges a stored submission
type SubmitResult struct {
	ID          uuid.UUID
	SubmittedAt time.Time
}

// ListInput contains the input for admin contact listing
type ListInput struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// UpdateStatusInput contains the input for a status change
type UpdateStatusInput struct {
	ID     uuid.UUID
	Status string
}

// ReplyInput contains the input for an admin reply
type ReplyInput struct {
	ID      uuid.UUID
	Subject string
	Message string
}

// ContactInfo is the admin-facing view of a submission
type ContactInfo struct {
	ID          uuid.UUID
	Name        string
	Email       string
	ProjectType string
	Message     string
	Status      string
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListResult is a page of contacts with pagination metadata
type ListResult struct {
	Contacts   []ContactInfo
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// StatsResult aggregates submission counts for the dashboard
type StatsResult struct {
	Total    int64
	New      int64
	Read     int64
	Replied  int64
	Archived int64
}

func toContactInfo(c *contact.Contact) ContactInfo {
	return ContactInfo{
		ID:          c.GetID(),
		Name:        c.Name,
		Email:       c.Email,
		ProjectType: string(c.ProjectType),
		Message:     c.Message,
		Status:      string(c.Status),
		IPAddress:   c.IPAddress,
		UserAgent:   c.UserAgent,
		CreatedAt:   c.GetCreatedAt(),
		UpdatedAt:   c.GetUpdatedAt(),
	}
}

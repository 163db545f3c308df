package showcase

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/showcase"
)

// ImageUpload describes an uploaded cover image file
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateProjectInput contains the input for project creation.
// Image precedence: when both a file and a URL are supplied, the file wins.
type CreateProjectInput struct {
	Title            string
	ShortDescription string
	Description      string
	Category         string
	Difficulty       string
	Technologies     string // JSON array, parse failures fall back to empty
	ImageURL         string
	LiveDemoURL      string
	GithubURL        string
	Featured         bool
	CompletionDate   *time.Time
	Image            *ImageUpload
}

// UpdateProjectInput contains the input for project updates
type UpdateProjectInput struct {
	ID               uuid.UUID
	Title            string
	ShortDescription string
	Description      string
	Category         string
	Difficulty       string
	Technologies     string
	ImageURL         string
	LiveDemoURL      string
	GithubURL        string
	CompletionDate   *time.Time
	Image            *ImageUpload
}

// ListInput contains the input for admin project listing
type ListInput struct {
	Status   string
	Category string
	Search   string
	Page     int
	PageSize int
}

// UpdateStatusInput contains the input for a visibility change
type UpdateStatusInput struct {
	ID     uuid.UUID
	Status string
}

// SetFeaturedInput contains the input for toggling the featured flag
type SetFeaturedInput struct {
	ID       uuid.UUID
	Featured bool
}

// OrderEntry assigns a sort position to a project
type OrderEntry struct {
	ID        uuid.UUID
	SortOrder int
}

// ProjectInfo is the API-facing view of a project
type ProjectInfo struct {
	ID               uuid.UUID
	Title            string
	ShortDescription string
	Description      string
	Category         string
	Difficulty       string
	Status           string
	Technologies     []string
	ImageURL         string
	LiveDemoURL      string
	GithubURL        string
	Featured         bool
	SortOrder        int
	CompletionDate   *time.Time
	Views            int64
	Likes            int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ListResult is a page of projects with pagination metadata
type ListResult struct {
	Projects   []ProjectInfo
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

func toProjectInfo(p *showcase.Project) ProjectInfo {
	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return ProjectInfo{
		ID:               p.GetID(),
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Category:         string(p.Category),
		Difficulty:       string(p.Difficulty),
		Status:           string(p.Status),
		Technologies:     technologies,
		ImageURL:         p.ImageURL,
		LiveDemoURL:      p.LiveDemoURL,
		GithubURL:        p.GithubURL,
		Featured:         p.Featured,
		SortOrder:        p.SortOrder,
		CompletionDate:   p.CompletionDate,
		Views:            p.Views,
		Likes:            p.Likes,
		CreatedAt:        p.GetCreatedAt(),
		UpdatedAt:        p.GetUpdatedAt(),
	}
}

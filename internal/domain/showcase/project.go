package showcase

import (
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
)

// Category classifies a portfolio project
type Category string

const (
	CategoryAIML        Category = "AI/ML"
	CategoryWebApp      Category = "Web Application"
	CategoryDesktopApp  Category = "Desktop Application"
	CategoryEcommerce   Category = "E-commerce"
	CategoryAnalytics   Category = "Analytics"
	CategoryMobileHlth  Category = "Mobile Health"
	CategoryIoT         Category = "IoT"
	CategoryBlockchain  Category = "Blockchain"
	CategoryGameDev     Category = "Game Development"
	CategoryDataScience Category = "Data Science"
	CategorySecurity    Category = "Cybersecurity"
	CategoryCloud       Category = "Cloud Computing"
	CategoryOther       Category = "Other"
)

// Difficulty rates how involved a project was
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

// Status controls public visibility of a project
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

const (
	maxTitleLength            = 100
	maxDescriptionLength      = 5000
	maxShortDescriptionLength = 1000
	// DefaultLink is used when no demo or repository URL is supplied
	DefaultLink = "#"
	// MaxFeatured caps how many projects may be featured at once
	MaxFeatured = 3
)

// Project represents a portfolio entry.
// It is the aggregate root for the showcase catalog.
type Project struct {
	shared.BaseEntity
	Title            string
	ShortDescription string
	Description      string
	Category         Category
	Difficulty       Difficulty
	Status           Status
	Technologies     []string
	ImageURL         string
	LiveDemoURL      string
	GithubURL        string
	Featured         bool
	SortOrder        int
	CompletionDate   *time.Time
	Views            int64
	Likes            int64
}

// NewProject validates and creates a project.
// Empty difficulty defaults to Intermediate, empty status to published,
// and empty links to "#".
func NewProject(title, shortDescription, description string, category Category, difficulty Difficulty, technologies []string, imageURL, liveDemoURL, githubURL string, completionDate *time.Time) (*Project, error) {
	title = strings.TrimSpace(title)
	shortDescription = strings.TrimSpace(shortDescription)
	description = strings.TrimSpace(description)

	if difficulty == "" {
		difficulty = DifficultyIntermediate
	}
	if liveDemoURL == "" {
		liveDemoURL = DefaultLink
	}
	if githubURL == "" {
		githubURL = DefaultLink
	}

	if err := validateProject(title, shortDescription, description, category, difficulty, imageURL); err != nil {
		return nil, err
	}

	return &Project{
		BaseEntity:       shared.NewBaseEntity(),
		Title:            title,
		ShortDescription: shortDescription,
		Description:      description,
		Category:         category,
		Difficulty:       difficulty,
		Status:           StatusPublished,
		Technologies:     technologies,
		ImageURL:         imageURL,
		LiveDemoURL:      liveDemoURL,
		GithubURL:        githubURL,
		CompletionDate:   completionDate,
	}, nil
}

// Update replaces the editable fields, keeping counters and ordering
func (p *Project) Update(title, shortDescription, description string, category Category, difficulty Difficulty, technologies []string, liveDemoURL, githubURL string, completionDate *time.Time) error {
	title = strings.TrimSpace(title)
	shortDescription = strings.TrimSpace(shortDescription)
	description = strings.TrimSpace(description)

	if difficulty == "" {
		difficulty = DifficultyIntermediate
	}
	if liveDemoURL == "" {
		liveDemoURL = DefaultLink
	}
	if githubURL == "" {
		githubURL = DefaultLink
	}

	if err := validateProject(title, shortDescription, description, category, difficulty, p.ImageURL); err != nil {
		return err
	}

	p.Title = title
	p.ShortDescription = shortDescription
	p.Description = description
	p.Category = category
	p.Difficulty = difficulty
	p.Technologies = technologies
	p.LiveDemoURL = liveDemoURL
	p.GithubURL = githubURL
	p.CompletionDate = completionDate
	p.Touch()

	return nil
}

// SetImage replaces the cover image reference
func (p *Project) SetImage(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Project image is required")
	}

	p.ImageURL = imageURL
	p.Touch()

	return nil
}

// SetStatus moves the project to a new visibility state
func (p *Project) SetStatus(status Status) error {
	if !IsValidStatus(status) {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of: draft, published, archived")
	}

	p.Status = status
	p.Touch()

	return nil
}

// SetFeatured toggles the featured flag
func (p *Project) SetFeatured(featured bool) {
	p.Featured = featured
	p.Touch()
}

// SetSortOrder moves the project within the public ordering
func (p *Project) SetSortOrder(order int) {
	p.SortOrder = order
	p.Touch()
}

// IsPublished reports whether the project is publicly visible
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}

// IsValidCategory reports whether c is a member of the category enum
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryAIML, CategoryWebApp, CategoryDesktopApp, CategoryEcommerce,
		CategoryAnalytics, CategoryMobileHlth, CategoryIoT, CategoryBlockchain,
		CategoryGameDev, CategoryDataScience, CategorySecurity, CategoryCloud,
		CategoryOther:
		return true
	}
	return false
}

// IsValidDifficulty reports whether d is a member of the difficulty enum
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// IsValidStatus reports whether s is a member of the status enum
func IsValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func validateProject(title, shortDescription, description string, category Category, difficulty Difficulty, imageURL string) error {
	if title == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Project title is required")
	}
	if len(title) > maxTitleLength {
		return shared.NewDomainError("VALIDATION_ERROR", "Project title cannot exceed 100 characters")
	}
	if shortDescription == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Project short description is required")
	}
	if len(shortDescription) > maxShortDescriptionLength {
		return shared.NewDomainError("VALIDATION_ERROR", "Project short description cannot exceed 1000 characters")
	}
	if description == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Project description is required")
	}
	if len(description) > maxDescriptionLength {
		return shared.NewDomainError("VALIDATION_ERROR", "Project description cannot exceed 5000 characters")
	}
	if category == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Project category is required")
	}
	if !IsValidCategory(category) {
		return shared.NewDomainError("VALIDATION_ERROR", "Please select a valid project category")
	}
	if !IsValidDifficulty(difficulty) {
		return shared.NewDomainError("VALIDATION_ERROR", "Please select a valid difficulty level")
	}
	if strings.TrimSpace(imageURL) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Project image is required")
	}
	return nil
}

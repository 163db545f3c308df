package models

import (
	"encoding/json"
	"time"

	"github.com/portfolio/backend/internal/domain/showcase"
)

// ProjectModel is the persistence model for the Project domain entity.
// Technologies are stored as a JSON array; malformed rows decode to an
// empty list rather than failing the read.
type ProjectModel struct {
	BaseModel
	Title            string              `gorm:"type:varchar(100);not null"`
	ShortDescription string              `gorm:"type:varchar(1000);not null"`
	Description      string              `gorm:"type:text;not null"`
	Category         showcase.Category   `gorm:"type:varchar(50);not null;index"`
	Difficulty       showcase.Difficulty `gorm:"type:varchar(20);not null;default:'Intermediate'"`
	Status           showcase.Status     `gorm:"type:varchar(20);not null;default:'published';index"`
	Technologies     string              `gorm:"type:jsonb;not null;default:'[]'"`
	ImageURL         string              `gorm:"type:varchar(500);not null"`
	LiveDemoURL      string              `gorm:"type:varchar(500);not null;default:'#'"`
	GithubURL        string              `gorm:"type:varchar(500);not null;default:'#'"`
	Featured         bool                `gorm:"not null;default:false;index"`
	SortOrder        int                 `gorm:"not null;default:0;index"`
	CompletionDate   *time.Time          `gorm:"type:date"`
	Views            int64               `gorm:"not null;default:0"`
	Likes            int64               `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *showcase.Project {
	var technologies []string
	if err := json.Unmarshal([]byte(m.Technologies), &technologies); err != nil {
		technologies = []string{}
	}

	return &showcase.Project{
		BaseEntity:       m.BaseModel.ToDomain(),
		Title:            m.Title,
		ShortDescription: m.ShortDescription,
		Description:      m.Description,
		Category:         m.Category,
		Difficulty:       m.Difficulty,
		Status:           m.Status,
		Technologies:     technologies,
		ImageURL:         m.ImageURL,
		LiveDemoURL:      m.LiveDemoURL,
		GithubURL:        m.GithubURL,
		Featured:         m.Featured,
		SortOrder:        m.SortOrder,
		CompletionDate:   m.CompletionDate,
		Views:            m.Views,
		Likes:            m.Likes,
	}
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *showcase.Project) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Title = p.Title
	m.ShortDescription = p.ShortDescription
	m.Description = p.Description
	m.Category = p.Category
	m.Difficulty = p.Difficulty
	m.Status = p.Status
	m.ImageURL = p.ImageURL
	m.LiveDemoURL = p.LiveDemoURL
	m.GithubURL = p.GithubURL
	m.Featured = p.Featured
	m.SortOrder = p.SortOrder
	m.CompletionDate = p.CompletionDate
	m.Views = p.Views
	m.Likes = p.Likes

	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	raw, err := json.Marshal(technologies)
	if err != nil {
		raw = []byte("[]")
	}
	m.Technologies = string(raw)
}

// ProjectModelFromDomain creates a new persistence model from a domain Project entity.
func ProjectModelFromDomain(p *showcase.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

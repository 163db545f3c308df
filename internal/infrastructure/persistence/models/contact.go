package models

import (
	"github.com/portfolio/backend/internal/domain/contact"
)

// ContactModel is the persistence model for the Contact domain entity.
type ContactModel struct {
	BaseModel
	Name        string              `gorm:"type:varchar(100);not null"`
	Email       string              `gorm:"type:varchar(200);not null;index"`
	ProjectType contact.ProjectType `gorm:"type:varchar(50);not null"`
	Message     string              `gorm:"type:text;not null"`
	Status      contact.Status      `gorm:"type:varchar(20);not null;default:'new';index"`
	IPAddress   string              `gorm:"type:varchar(45)"`
	UserAgent   string              `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *contact.Contact {
	return &contact.Contact{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Email:       m.Email,
		ProjectType: m.ProjectType,
		Message:     m.Message,
		Status:      m.Status,
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *contact.Contact) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.ProjectType = c.ProjectType
	m.Message = c.Message
	m.Status = c.Status
	m.IPAddress = c.IPAddress
	m.UserAgent = c.UserAgent
}

// ContactModelFromDomain creates a new persistence model from a domain Contact entity.
func ContactModelFromDomain(c *contact.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomain(c)
	return m
}

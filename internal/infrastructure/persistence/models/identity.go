package models

import (
	"time"

	"github.com/portfolio/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email         string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash  string        `gorm:"type:varchar(255);not null"`
	Name          string        `gorm:"type:varchar(100);not null"`
	Role          identity.Role `gorm:"type:varchar(20);not null;default:'editor'"`
	IsActive      bool          `gorm:"not null;default:true"`
	LoginAttempts int           `gorm:"not null;default:0"`
	LockUntil     *time.Time
	LastLoginAt   *time.Time `gorm:"index"`
	LastLoginIP   string     `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:    m.BaseModel.ToDomain(),
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Name:          m.Name,
		Role:          m.Role,
		IsActive:      m.IsActive,
		LoginAttempts: m.LoginAttempts,
		LockUntil:     m.LockUntil,
		LastLoginAt:   m.LastLoginAt,
		LastLoginIP:   m.LastLoginIP,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.Role = u.Role
	m.IsActive = u.IsActive
	m.LoginAttempts = u.LoginAttempts
	m.LockUntil = u.LockUntil
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

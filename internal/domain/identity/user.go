package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's role
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account that can sign in to the admin panel.
// It is the aggregate root for identity operations.
type User struct {
	shared.BaseEntity
	Email         string
	PasswordHash  string
	Name          string
	Role          Role
	IsActive      bool
	LoginAttempts int
	LockUntil     *time.Time
	LastLoginAt   *time.Time
	LastLoginIP   string
}

// NewUser creates a new active user with a hashed password
func NewUser(email, password, name string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if role != RoleAdmin && role != RoleEditor {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or editor")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Role:         role,
		IsActive:     true,
	}, nil
}

// NewAdmin creates a new active admin user
func NewAdmin(email, password, name string) (*User, error) {
	return NewUser(email, password, name, RoleAdmin)
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()

	return nil
}

// ChangePassword changes the password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}

	u.Email = email
	u.Touch()

	return nil
}

// SetName sets the user's display name
func (u *User) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.Touch()

	return nil
}

// Activate re-enables a disabled account
func (u *User) Activate() {
	u.IsActive = true
	u.LoginAttempts = 0
	u.LockUntil = nil
	u.Touch()
}

// Deactivate disables the account; outstanding tokens stop resolving
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// IsLocked returns true while a lockout window is active
func (u *User) IsLocked() bool {
	return u.LockUntil != nil && time.Now().Before(*u.LockUntil)
}

// CanLogin returns true if the account accepts authentication attempts
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsLocked()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account has just been locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	// An expired lock counts as a fresh start
	if u.LockUntil != nil && !u.IsLocked() {
		u.LoginAttempts = 0
		u.LockUntil = nil
	}

	u.LoginAttempts++
	u.Touch()

	if u.LoginAttempts >= maxAttempts {
		lockUntil := time.Now().Add(lockDuration)
		u.LockUntil = &lockUntil
		return true
	}

	return false
}

// RecordLoginSuccess records a successful login and clears any lockout state
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.LoginAttempts = 0
	u.LockUntil = nil
	u.Touch()
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

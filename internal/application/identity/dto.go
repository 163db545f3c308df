package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	Name        string
	Role        string
	LastLoginAt *time.Time
}

// RefreshInput contains the input for token refresh
type RefreshInput struct {
	UserID uuid.UUID
	JTI    string
	TTL    time.Duration // remaining lifetime of the presented token
}

// RefreshResult contains the result of a token refresh
type RefreshResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID uuid.UUID
	JTI    string
	TTL    time.Duration // remaining lifetime of the presented token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput contains the input for profile updates
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/identity"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     2 * time.Hour,
	}
}

// AuthService handles authentication operations for the admin console
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates an admin user and returns an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if user.IsLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked. Please try again later")
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for disabled account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", input.Email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("email", input.Email),
			zap.Int("failed_attempts", user.LoginAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if user.Role != identity.RoleAdmin {
		s.logger.Warn("Login attempt without admin role",
			zap.String("email", input.Email),
			zap.String("role", string(user.Role)))
		return nil, shared.NewDomainError("FORBIDDEN", "Admin access required")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.GetID(),
		Email:  user.Email,
		Role:   string(user.Role),
		Name:   user.Name,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Login still succeeds; the stamp is best-effort
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("email", input.Email),
		zap.String("user_id", user.GetID().String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserInfo(user),
	}, nil
}

// Refresh issues a fresh token for an already-authenticated user and
// revokes the presented one
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", input.UserID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is no longer active")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.GetID(),
		Email:  user.Email,
		Role:   string(user.Role),
		Name:   user.Name,
	})
	if err != nil {
		s.logger.Error("Failed to generate token during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	// Revoke the old token for the rest of its lifetime
	if input.JTI != "" && input.TTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.JTI, input.TTL); err != nil {
			s.logger.Error("Failed to blacklist refreshed token", zap.Error(err))
		}
	}

	s.logger.Info("Token refreshed", zap.String("user_id", input.UserID.String()))

	return &RefreshResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
	}, nil
}

// Logout revokes the presented token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if input.JTI == "" || input.TTL <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.JTI, input.TTL); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	info := toUserInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password and revokes their existing tokens
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	// Force re-login everywhere else
	if err := s.blacklist.InvalidateUserTokens(ctx, user.GetID().String(), s.jwtService.GetExpiration()); err != nil {
		s.logger.Error("Failed to invalidate tokens after password change", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))

	return nil
}

// UpdateProfile updates the user's name and email
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.Email != "" && input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			s.logger.Error("Failed to check email uniqueness", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already in use")
		}
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}

	if input.Name != "" {
		if err := user.SetName(input.Name); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := toUserInfo(user)
	return &info, nil
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.GetID(),
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
	}
}

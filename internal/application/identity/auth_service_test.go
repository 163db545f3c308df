package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/identity"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAdmin(ctx context.Context) (*identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func createTestAdmin(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewAdmin("admin@example.com", "Password123", "Admin")
	require.NoError(t, err)
	return user
}

func createAuthService(userRepo *MockUserRepository) *AuthService {
	return createAuthServiceWithConfig(userRepo, DefaultAuthServiceConfig())
}

func createAuthServiceWithConfig(userRepo *MockUserRepository, cfg AuthServiceConfig) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-32-characters-long",
		Expiration: 24 * time.Hour,
		Issuer:     "test-issuer",
	})

	return NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		cfg,
		zap.NewNop(),
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestAdmin(t)

	userRepo.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Email:    "admin@example.com",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "admin@example.com", result.User.Email)
	assert.Equal(t, "admin", result.User.Role)
	assert.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "127.0.0.1", user.LastLoginIP)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, errors.New("not found"))

		authService := createAuthService(userRepo)

		_, err := authService.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("wrong password increments attempts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		userRepo.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		authService := createAuthService(userRepo)

		_, err := authService.Login(ctx, LoginInput{Email: "admin@example.com", Password: "wrong"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, 1, user.LoginAttempts)
	})

	t.Run("lock engages at the attempt limit", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		user.LoginAttempts = 4
		userRepo.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		authService := createAuthService(userRepo)

		_, err := authService.Login(ctx, LoginInput{Email: "admin@example.com", Password: "wrong"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())
	})
}

func TestAuthService_Login_BlockedAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("locked account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		until := time.Now().Add(time.Hour)
		user.LockUntil = &until
		userRepo.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)

		authService := createAuthService(userRepo)

		_, err := authService.Login(ctx, LoginInput{Email: "admin@example.com", Password: "Password123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		user.Deactivate()
		userRepo.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)

		authService := createAuthService(userRepo)

		_, err := authService.Login(ctx, LoginInput{Email: "admin@example.com", Password: "Password123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
	})

	t.Run("configured attempt limit locks the account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		userRepo.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		authService := createAuthServiceWithConfig(userRepo, AuthServiceConfig{
			MaxLoginAttempts: 2,
			LockDuration:     30 * time.Minute,
		})

		for i := 0; i < 2; i++ {
			_, err := authService.Login(ctx, LoginInput{Email: "admin@example.com", Password: "wrong"})
			require.Error(t, err)
		}

		_, err := authService.Login(ctx, LoginInput{Email: "admin@example.com", Password: "Password123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		require.NotNil(t, user.LockUntil)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), *user.LockUntil, time.Minute)
	})

	t.Run("non-admin role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user, err := identity.NewUser("editor@example.com", "Password123", "Editor", identity.RoleEditor)
		require.NoError(t, err)
		userRepo.On("FindByEmail", ctx, "editor@example.com").Return(user, nil)

		authService := createAuthService(userRepo)

		_, err = authService.Login(ctx, LoginInput{Email: "editor@example.com", Password: "Password123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a new token and revokes the old one", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		userRepo.On("FindByID", ctx, user.GetID()).Return(user, nil)

		authService := createAuthService(userRepo)

		result, err := authService.Refresh(ctx, RefreshInput{
			UserID: user.GetID(),
			JTI:    "old-jti",
			TTL:    time.Hour,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)

		blacklisted, err := authService.blacklist.IsBlacklisted(ctx, "old-jti")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("refuses inactive user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		user.Deactivate()
		userRepo.On("FindByID", ctx, user.GetID()).Return(user, nil)

		authService := createAuthService(userRepo)

		_, err := authService.Refresh(ctx, RefreshInput{UserID: user.GetID()})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	authService := createAuthService(userRepo)
	userID := uuid.New()

	err := authService.Logout(ctx, LogoutInput{UserID: userID, JTI: "jti-1", TTL: time.Hour})
	require.NoError(t, err)

	blacklisted, err := authService.blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success revokes existing tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		issuedAt := time.Now().Add(-time.Minute)
		userRepo.On("FindByID", ctx, user.GetID()).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		authService := createAuthService(userRepo)

		err := authService.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.GetID(),
			OldPassword: "Password123",
			NewPassword: "NewPassword456",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))

		invalid, err := authService.blacklist.IsUserTokenInvalidated(ctx, user.GetID().String(), issuedAt)
		require.NoError(t, err)
		assert.True(t, invalid)
	})

	t.Run("wrong old password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		userRepo.On("FindByID", ctx, user.GetID()).Return(user, nil)

		authService := createAuthService(userRepo)

		err := authService.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.GetID(),
			OldPassword: "nope",
			NewPassword: "NewPassword456",
		})

		assert.Error(t, err)
		assert.True(t, user.VerifyPassword("Password123"))
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates name and email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		userRepo.On("FindByID", ctx, user.GetID()).Return(user, nil)
		userRepo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		authService := createAuthService(userRepo)

		info, err := authService.UpdateProfile(ctx, UpdateProfileInput{
			UserID: user.GetID(),
			Name:   "New Name",
			Email:  "new@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", info.Name)
		assert.Equal(t, "new@example.com", info.Email)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestAdmin(t)
		userRepo.On("FindByID", ctx, user.GetID()).Return(user, nil)
		userRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		authService := createAuthService(userRepo)

		_, err := authService.UpdateProfile(ctx, UpdateProfileInput{
			UserID: user.GetID(),
			Email:  "taken@example.com",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

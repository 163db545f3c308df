package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/domain/identity"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockUserRepository is a testify mock of identity.UserRepository
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

func newAuthTestRouter(t *testing.T, repo *MockUserRepository) *gin.Engine {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "portfolio-test",
	})
	service := identityapp.NewAuthService(
		repo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		identityapp.DefaultAuthServiceConfig(),
		zap.NewNop(),
	)

	r := gin.New()
	api := r.Group("/api")
	NewAuthHandler(service).RegisterRoutes(api, middleware.JWTAuthMiddleware(jwtService))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns a token for valid admin credentials", func(t *testing.T) {
		admin, err := identity.NewAdmin("admin@example.com", "Password123", "Admin")
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		r := newAuthTestRouter(t, repo)
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "Password123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				AccessToken string `json:"access_token"`
				TokenType   string `json:"token_type"`
				User        struct {
					Email string `json:"email"`
					Role  string `json:"role"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.AccessToken)
		assert.Equal(t, "Bearer", resp.Data.TokenType)
		assert.Equal(t, "admin", resp.Data.User.Role)
	})

	t.Run("returns 401 for a wrong password", func(t *testing.T) {
		admin, err := identity.NewAdmin("admin@example.com", "Password123", "Admin")
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		r := newAuthTestRouter(t, repo)
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns 401 for an unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		r := newAuthTestRouter(t, repo)
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "ghost@example.com",
			"password": "Password123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		r := newAuthTestRouter(t, new(MockUserRepository))
		w := postJSON(t, r, "/api/auth/login", gin.H{"email": "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 403 for a non-admin account", func(t *testing.T) {
		editor, err := identity.NewUser("editor@example.com", "Password123", "Editor", identity.RoleEditor)
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "editor@example.com").Return(editor, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		r := newAuthTestRouter(t, repo)
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "editor@example.com",
			"password": "Password123",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		admin, err := identity.NewAdmin("admin@example.com", "Password123", "Admin")
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		repo.On("FindByID", mock.Anything, admin.GetID()).Return(admin, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		r := newAuthTestRouter(t, repo)

		login := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "Password123",
		})
		require.Equal(t, http.StatusOK, login.Code)

		var loginResp struct {
			Data struct {
				AccessToken string `json:"access_token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		r := newAuthTestRouter(t, new(MockUserRepository))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("wrong current password is a client error", func(t *testing.T) {
		admin, err := identity.NewAdmin("admin@example.com", "Password123", "Admin")
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		repo.On("FindByID", mock.Anything, admin.GetID()).Return(admin, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		r := newAuthTestRouter(t, repo)

		login := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "Password123",
		})
		require.Equal(t, http.StatusOK, login.Code)

		var loginResp struct {
			Data struct {
				AccessToken string `json:"access_token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

		payload, err := json.Marshal(gin.H{
			"old_password": "not-the-password",
			"new_password": "NewPassword456",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/auth/password", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Current password is incorrect")
	})
}

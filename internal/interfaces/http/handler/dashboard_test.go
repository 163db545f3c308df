package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	contactapp "github.com/portfolio/backend/internal/application/contact"
	identityapp "github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/domain/contact"
	"github.com/portfolio/backend/internal/domain/identity"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardHandler_Show(t *testing.T) {
	t.Run("bundles profile, stats and recent contacts", func(t *testing.T) {
		admin, err := identity.NewAdmin("admin@example.com", "Password123", "Admin")
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)

		recent, err := contact.NewContact("Jane", "jane@example.com", contact.ProjectTypeWebDevelopment, "Need a website.", "203.0.113.7", "Mozilla/5.0")
		require.NoError(t, err)

		contactRepo := new(MockContactRepository)
		contactRepo.On("CountByStatus", mock.Anything).Return(&contact.StatusCounts{Total: 4, New: 2, Read: 1, Replied: 1}, nil)
		contactRepo.On("Recent", mock.Anything, recentContactsOnDashboard).Return([]*contact.Contact{recent}, nil)

		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret:     "test-secret-key-that-is-long-enough",
			Expiration: time.Hour,
			Issuer:     "portfolio-test",
		})
		authService := identityapp.NewAuthService(
			userRepo,
			jwtService,
			auth.NewInMemoryTokenBlacklist(),
			identityapp.DefaultAuthServiceConfig(),
			zap.NewNop(),
		)
		contactService := contactapp.NewContactService(contactRepo, contactapp.NopNotifier{}, zap.NewNop())

		r := gin.New()
		adminGroup := r.Group("/api/admin", func(c *gin.Context) {
			c.Set(middleware.JWTUserIDKey, admin.ID.String())
		})
		NewDashboardHandler(authService, contactService).RegisterRoutes(adminGroup)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Profile struct {
					Email string `json:"email"`
				} `json:"profile"`
				ContactStats struct {
					Total int64 `json:"total"`
					New   int64 `json:"new"`
				} `json:"contact_stats"`
				RecentContacts []struct {
					Name string `json:"name"`
				} `json:"recent_contacts"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "admin@example.com", resp.Data.Profile.Email)
		assert.Equal(t, int64(4), resp.Data.ContactStats.Total)
		assert.Equal(t, int64(2), resp.Data.ContactStats.New)
		require.Len(t, resp.Data.RecentContacts, 1)
		assert.Equal(t, "Jane", resp.Data.RecentContacts[0].Name)
	})

	t.Run("rejects requests without an authenticated user", func(t *testing.T) {
		r := gin.New()
		adminGroup := r.Group("/api/admin")
		NewDashboardHandler(nil, nil).RegisterRoutes(adminGroup)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

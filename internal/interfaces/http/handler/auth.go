package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// TokenResponse represents an issued token in API responses
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user,omitempty"`
}

func toUserResponse(u identity.UserInfo) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
	}
}

// Login godoc
// @ID           login
// @Summary      Log in as the site admin
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      423 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
		User:        toUserResponse(result.User),
	})
}

// Refresh godoc
// @ID           refreshToken
// @Summary      Refresh the bearer token
// @Description  Issue a new token and revoke the presented one
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[TokenResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	userID, err := getUserID(c)
	if claims == nil || err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), identity.RefreshInput{
		UserID: userID,
		JTI:    claims.ID,
		TTL:    claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
	})
}

// Logout godoc
// @ID           logout
// @Summary      Log out
// @Description  Revoke the presented token
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	userID, err := getUserID(c)
	if claims == nil || err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID: userID,
		JTI:    claims.ID,
		TTL:    claims.GetRemainingTTL(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Me godoc
// @ID           getCurrentUser
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[UserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*user))
}

// ChangePassword godoc
// @ID           changePassword
// @Summary      Change the admin password
// @Description  Changes the password and revokes all previously issued tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Password change request"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateProfile godoc
// @ID           updateProfile
// @Summary      Update the admin profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile update request"
// @Success      200 {object} APIResponse[UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), identity.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*user))
}

// RegisterRoutes registers auth routes. The auth middleware guards
// everything except login.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)

		protected := authGroup.Group("")
		protected.Use(authRequired)
		{
			protected.POST("/refresh", h.Refresh)
			protected.POST("/logout", h.Logout)
			protected.GET("/me", h.Me)
			protected.PUT("/password", h.ChangePassword)
			protected.PUT("/profile", h.UpdateProfile)
		}
	}
}

// RegisterAdminRoutes exposes the profile under the admin console prefix
func (h *AuthHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Me)
	rg.PATCH("/profile", h.UpdateProfile)
}

package handler

import (
	"github.com/gin-gonic/gin"
	contactapp "github.com/portfolio/backend/internal/application/contact"
	identityapp "github.com/portfolio/backend/internal/application/identity"
)

// recentContactsOnDashboard is how many submissions the console shows up front
const recentContactsOnDashboard = 5

// DashboardHandler serves the admin console landing data
type DashboardHandler struct {
	BaseHandler
	authService    *identityapp.AuthService
	contactService *contactapp.ContactService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(authService *identityapp.AuthService, contactService *contactapp.ContactService) *DashboardHandler {
	return &DashboardHandler{
		authService:    authService,
		contactService: contactService,
	}
}

// DashboardResponse bundles everything the console needs in one request
type DashboardResponse struct {
	Profile        *UserResponse        `json:"profile"`
	ContactStats   ContactStatsResponse `json:"contact_stats"`
	RecentContacts []ContactResponse    `json:"recent_contacts"`
}

// Show godoc
// @ID           getDashboard
// @Summary      Get admin dashboard data
// @Description  Profile, contact stats and the latest submissions in one payload
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[DashboardResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ctx := c.Request.Context()

	profile, err := h.authService.GetCurrentUser(ctx, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	stats, err := h.contactService.Stats(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	recent, err := h.contactService.Recent(ctx, recentContactsOnDashboard)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DashboardResponse{
		Profile: toUserResponse(*profile),
		ContactStats: ContactStatsResponse{
			Total:    stats.Total,
			New:      stats.New,
			Read:     stats.Read,
			Replied:  stats.Replied,
			Archived: stats.Archived,
		},
		RecentContacts: toContactResponses(recent),
	})
}

// RegisterRoutes registers the dashboard endpoint
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Show)
}

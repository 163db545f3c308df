package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contactapp "github.com/portfolio/backend/internal/application/contact"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
)

// ContactHandler handles contact HTTP requests. Submit is public;
// everything else is admin console.
type ContactHandler struct {
	BaseHandler
	contactService *contactapp.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *contactapp.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// SubmitContactRequest represents a public contact form submission
type SubmitContactRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	ProjectType string `json:"project_type" binding:"required"`
	Message     string `json:"message" binding:"required,max=1000"`
}

// UpdateContactStatusRequest represents a status change
type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReplyContactRequest represents an admin reply
type ReplyContactRequest struct {
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=1000"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ProjectType string    `json:"project_type"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecentContactResponse is the redacted shape returned publicly:
// no email, message, or client metadata.
type RecentContactResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectType string    `json:"project_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactStatsResponse aggregates submission counts
type ContactStatsResponse struct {
	Total    int64 `json:"total"`
	New      int64 `json:"new"`
	Read     int64 `json:"read"`
	Replied  int64 `json:"replied"`
	Archived int64 `json:"archived"`
}

func toContactResponse(info contactapp.ContactInfo) ContactResponse {
	return ContactResponse{
		ID:          info.ID.String(),
		Name:        info.Name,
		Email:       info.Email,
		ProjectType: info.ProjectType,
		Message:     info.Message,
		Status:      info.Status,
		IPAddress:   info.IPAddress,
		UserAgent:   info.UserAgent,
		CreatedAt:   info.CreatedAt,
		UpdatedAt:   info.UpdatedAt,
	}
}

func toContactResponses(infos []contactapp.ContactInfo) []ContactResponse {
	out := make([]ContactResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toContactResponse(info))
	}
	return out
}

// Submit godoc
// @ID           submitContact
// @Summary      Submit the contact form
// @Description  Public endpoint for visitors; rate limited per IP
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body SubmitContactRequest true "Contact submission"
// @Success      201 {object} APIResponse[ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), contactapp.SubmitInput{
		Name:        req.Name,
		Email:       req.Email,
		ProjectType: req.ProjectType,
		Message:     req.Message,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"id":           result.ID.String(),
		"submitted_at": result.SubmittedAt,
	})
}

// List godoc
// @ID           listContacts
// @Summary      List contact submissions
// @Tags         contacts
// @Produce      json
// @Param        status query string false "Filter by status" Enums(new, read, replied, archived)
// @Param        search query string false "Search in name, email and message"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.contactService.List(c.Request.Context(), contactapp.ListInput{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toContactResponses(result.Contacts), result.Total, result.Page, result.PageSize)
}

// Get godoc
// @ID           getContact
// @Summary      Get a contact submission
// @Description  Fetching a new submission marks it as read
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      200 {object} APIResponse[ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	info, err := h.contactService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toContactResponse(*info))
}

// UpdateStatus godoc
// @ID           updateContactStatus
// @Summary      Change a contact's status
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Param        request body UpdateContactStatusRequest true "New status"
// @Success      200 {object} APIResponse[ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/contacts/{id}/status [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.contactService.UpdateStatus(c.Request.Context(), contactapp.UpdateStatusInput{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toContactResponse(*info))
}

// Reply godoc
// @ID           replyContact
// @Summary      Reply to a contact submission
// @Description  Sends the reply by email and marks the submission replied
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Param        request body ReplyContactRequest true "Reply content"
// @Success      200 {object} APIResponse[ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/contacts/{id}/reply [post]
func (h *ContactHandler) Reply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req ReplyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.contactService.Reply(c.Request.Context(), contactapp.ReplyInput{
		ID:      id,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toContactResponse(*info))
}

// Archive godoc
// @ID           archiveContact
// @Summary      Archive a contact submission
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/contacts/{id} [delete]
func (h *ContactHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Archive(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Stats godoc
// @ID           getContactStats
// @Summary      Get contact counts by status
// @Tags         contacts
// @Produce      json
// @Success      200 {object} APIResponse[ContactStatsResponse]
// @Security     BearerAuth
// @Router       /admin/contacts/stats [get]
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contactService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ContactStatsResponse{
		Total:    stats.Total,
		New:      stats.New,
		Read:     stats.Read,
		Replied:  stats.Replied,
		Archived: stats.Archived,
	})
}

// Recent godoc
// @ID           getRecentContacts
// @Summary      Get the most recent submissions
// @Tags         contacts
// @Produce      json
// @Param        limit query int false "Number of submissions" default(5) maximum(50)
// @Success      200 {object} APIResponse[[]ContactResponse]
// @Security     BearerAuth
// @Router       /admin/contacts/recent [get]
func (h *ContactHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	infos, err := h.contactService.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toContactResponses(infos))
}

// PublicStats godoc
// @ID           getPublicContactStats
// @Summary      Get contact counts by status
// @Tags         contacts
// @Produce      json
// @Success      200 {object} APIResponse[ContactStatsResponse]
// @Router       /contact/stats [get]
func (h *ContactHandler) PublicStats(c *gin.Context) {
	h.Stats(c)
}

// PublicRecent godoc
// @ID           getPublicRecentContacts
// @Summary      Get the most recent submissions, redacted
// @Description  Returns names and project types only, no contact details
// @Tags         contacts
// @Produce      json
// @Param        limit query int false "Number of submissions" default(5) maximum(50)
// @Success      200 {object} APIResponse[[]RecentContactResponse]
// @Router       /contact/recent [get]
func (h *ContactHandler) PublicRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	infos, err := h.contactService.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]RecentContactResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, RecentContactResponse{
			ID:          info.ID.String(),
			Name:        info.Name,
			ProjectType: info.ProjectType,
			Status:      info.Status,
			CreatedAt:   info.CreatedAt,
		})
	}

	h.Success(c, out)
}

// RegisterPublicRoutes registers the visitor-facing endpoints
func (h *ContactHandler) RegisterPublicRoutes(rg *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	if rateLimit != nil {
		rg.POST("/contact", rateLimit, h.Submit)
	} else {
		rg.POST("/contact", h.Submit)
	}
	rg.GET("/contact/stats", h.PublicStats)
	rg.GET("/contact/recent", h.PublicRecent)
}

// RegisterAdminRoutes registers the admin console endpoints
func (h *ContactHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	{
		contacts.GET("", h.List)
		contacts.GET("/stats", h.Stats)
		contacts.GET("/recent", h.Recent)
		contacts.GET("/:id", h.Get)
		contacts.PATCH("/:id/status", h.UpdateStatus)
		contacts.POST("/:id/reply", h.Reply)
		contacts.DELETE("/:id", h.Archive)
	}
}

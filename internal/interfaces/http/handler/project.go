package handler

import (
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	showcaseapp "github.com/portfolio/backend/internal/application/showcase"
)

// ProjectHandler handles project HTTP requests. The read endpoints are
// public; mutations are admin console.
type ProjectHandler struct {
	BaseHandler
	projectService *showcaseapp.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *showcaseapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ProjectForm represents the multipart form for creating or updating a
// project. The cover image arrives either as the "image" file part or
// as the image_url field; the file wins when both are present.
type ProjectForm struct {
	Title            string `form:"title" binding:"required,max=100"`
	ShortDescription string `form:"short_description" binding:"required,max=1000"`
	Description      string `form:"description" binding:"required,max=5000"`
	Category         string `form:"category" binding:"required"`
	Difficulty       string `form:"difficulty"`
	Technologies     string `form:"technologies"`
	ImageURL         string `form:"image_url"`
	LiveDemoURL      string `form:"live_demo_url"`
	GithubURL        string `form:"github_url"`
	Featured         bool   `form:"featured"`
	CompletionDate   string `form:"completion_date"`
}

// completionDate parses the optional completion_date field, accepting a
// plain date or RFC 3339
func (f *ProjectForm) completionDate() (*time.Time, error) {
	if f.CompletionDate == "" {
		return nil, nil
	}
	if d, err := time.Parse("2006-01-02", f.CompletionDate); err == nil {
		return &d, nil
	}
	d, err := time.Parse(time.RFC3339, f.CompletionDate)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateProjectStatusRequest represents a visibility change
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetFeaturedRequest represents a featured flag change
type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// ProjectOrderRequest represents a bulk reorder
type ProjectOrderRequest struct {
	Projects []ProjectOrderEntry `json:"projects" binding:"required,min=1,dive"`
}

// ProjectOrderEntry assigns a sort position to one project
type ProjectOrderEntry struct {
	ID        string `json:"id" binding:"required,uuid"`
	SortOrder int    `json:"sort_order"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Difficulty       string     `json:"difficulty"`
	Status           string     `json:"status"`
	Technologies     []string   `json:"technologies"`
	ImageURL         string     `json:"image_url"`
	LiveDemoURL      string     `json:"live_demo_url"`
	GithubURL        string     `json:"github_url"`
	Featured         bool       `json:"featured"`
	SortOrder        int        `json:"sort_order"`
	CompletionDate   *time.Time `json:"completion_date,omitempty"`
	Views            int64      `json:"views"`
	Likes            int64      `json:"likes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toProjectResponse(info showcaseapp.ProjectInfo) ProjectResponse {
	return ProjectResponse{
		ID:               info.ID.String(),
		Title:            info.Title,
		ShortDescription: info.ShortDescription,
		Description:      info.Description,
		Category:         info.Category,
		Difficulty:       info.Difficulty,
		Status:           info.Status,
		Technologies:     info.Technologies,
		ImageURL:         info.ImageURL,
		LiveDemoURL:      info.LiveDemoURL,
		GithubURL:        info.GithubURL,
		Featured:         info.Featured,
		SortOrder:        info.SortOrder,
		CompletionDate:   info.CompletionDate,
		Views:            info.Views,
		Likes:            info.Likes,
		CreatedAt:        info.CreatedAt,
		UpdatedAt:        info.UpdatedAt,
	}
}

func toProjectResponses(infos []showcaseapp.ProjectInfo) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toProjectResponse(info))
	}
	return out
}

// imageUpload converts a multipart file header into an application upload.
// The caller owns closing via the returned closer.
func imageUpload(fh *multipart.FileHeader) (*showcaseapp.ImageUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &showcaseapp.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, f, nil
}

// ListPublished godoc
// @ID           listPublishedProjects
// @Summary      List published projects
// @Tags         projects
// @Produce      json
// @Param        category query string false "Filter by category"
// @Success      200 {object} APIResponse[[]ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /projects [get]
func (h *ProjectHandler) ListPublished(c *gin.Context) {
	infos, err := h.projectService.ListPublished(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponses(infos))
}

// ListFeatured godoc
// @ID           listFeaturedProjects
// @Summary      List featured projects
// @Tags         projects
// @Produce      json
// @Success      200 {object} APIResponse[[]ProjectResponse]
// @Router       /projects/featured [get]
func (h *ProjectHandler) ListFeatured(c *gin.Context) {
	infos, err := h.projectService.ListFeatured(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponses(infos))
}

// GetPublished godoc
// @ID           getPublishedProject
// @Summary      Get a published project
// @Description  Increments the view counter
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	info, err := h.projectService.GetPublished(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(*info))
}

// Like godoc
// @ID           likeProject
// @Summary      Like a published project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /projects/{id}/like [post]
func (h *ProjectHandler) Like(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.Like(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// View godoc
// @ID           viewProject
// @Summary      Record a view for a published project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /projects/{id}/view [post]
func (h *ProjectHandler) View(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.View(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListByCategory godoc
// @ID           listProjectsByCategory
// @Summary      List published projects in a category
// @Tags         projects
// @Produce      json
// @Param        category path string true "Project category"
// @Success      200 {object} APIResponse[[]ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /projects/category/{category} [get]
func (h *ProjectHandler) ListByCategory(c *gin.Context) {
	infos, err := h.projectService.ListPublished(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponses(infos))
}

// List godoc
// @ID           listProjects
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Param        status query string false "Filter by status" Enums(draft, published, archived)
// @Param        category query string false "Filter by category"
// @Param        search query string false "Search in title and description"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.projectService.List(c.Request.Context(), showcaseapp.ListInput{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProjectResponses(result.Projects), result.Total, result.Page, result.PageSize)
}

// Get godoc
// @ID           getProject
// @Summary      Get a project regardless of status
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	info, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(*info))
}

// Create godoc
// @ID           createProject
// @Summary      Create a project
// @Description  Accepts multipart form data with an optional image file
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Success      201 {object} APIResponse[ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var form ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, "Invalid form data")
		return
	}

	completionDate, err := form.completionDate()
	if err != nil {
		h.BadRequest(c, "Invalid completion date")
		return
	}

	input := showcaseapp.CreateProjectInput{
		Title:            form.Title,
		ShortDescription: form.ShortDescription,
		Description:      form.Description,
		Category:         form.Category,
		Difficulty:       form.Difficulty,
		Technologies:     form.Technologies,
		ImageURL:         form.ImageURL,
		LiveDemoURL:      form.LiveDemoURL,
		GithubURL:        form.GithubURL,
		Featured:         form.Featured,
		CompletionDate:   completionDate,
	}

	if fh, err := c.FormFile("image"); err == nil {
		upload, f, err := imageUpload(fh)
		if err != nil {
			h.BadRequest(c, "Unable to read uploaded image")
			return
		}
		defer f.Close()
		input.Image = upload
	}

	info, err := h.projectService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProjectResponse(*info))
}

// Update godoc
// @ID           updateProject
// @Summary      Update a project
// @Description  Accepts multipart form data; a new image replaces the old one
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var form ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, "Invalid form data")
		return
	}

	completionDate, err := form.completionDate()
	if err != nil {
		h.BadRequest(c, "Invalid completion date")
		return
	}

	input := showcaseapp.UpdateProjectInput{
		ID:               id,
		Title:            form.Title,
		ShortDescription: form.ShortDescription,
		Description:      form.Description,
		Category:         form.Category,
		Difficulty:       form.Difficulty,
		Technologies:     form.Technologies,
		ImageURL:         form.ImageURL,
		LiveDemoURL:      form.LiveDemoURL,
		GithubURL:        form.GithubURL,
		CompletionDate:   completionDate,
	}

	if fh, err := c.FormFile("image"); err == nil {
		upload, f, err := imageUpload(fh)
		if err != nil {
			h.BadRequest(c, "Unable to read uploaded image")
			return
		}
		defer f.Close()
		input.Image = upload
	}

	info, err := h.projectService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(*info))
}

// Delete godoc
// @ID           deleteProject
// @Summary      Delete a project
// @Description  Removes the project and its stored image
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateStatus godoc
// @ID           updateProjectStatus
// @Summary      Change a project's visibility
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body UpdateProjectStatusRequest true "New status"
// @Success      200 {object} APIResponse[ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.projectService.UpdateStatus(c.Request.Context(), showcaseapp.UpdateStatusInput{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(*info))
}

// SetFeatured godoc
// @ID           setProjectFeatured
// @Summary      Toggle the featured flag
// @Description  At most three projects can be featured at once
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body SetFeaturedRequest true "Featured flag"
// @Success      200 {object} APIResponse[ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects/{id}/featured [patch]
func (h *ProjectHandler) SetFeatured(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.projectService.SetFeatured(c.Request.Context(), showcaseapp.SetFeaturedInput{
		ID:       id,
		Featured: *req.Featured,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(*info))
}

// UpdateOrder godoc
// @ID           updateProjectOrder
// @Summary      Reorder projects
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body ProjectOrderRequest true "New sort order"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/projects/order [put]
func (h *ProjectHandler) UpdateOrder(c *gin.Context) {
	var req ProjectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]showcaseapp.OrderEntry, 0, len(req.Projects))
	for _, p := range req.Projects {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			h.BadRequest(c, "Invalid project ID: "+p.ID)
			return
		}
		entries = append(entries, showcaseapp.OrderEntry{ID: id, SortOrder: p.SortOrder})
	}

	if err := h.projectService.UpdateOrder(c.Request.Context(), entries); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterPublicRoutes registers the visitor-facing read endpoints
func (h *ProjectHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET("", h.ListPublished)
		projects.GET("/featured", h.ListFeatured)
		projects.GET("/category/:category", h.ListByCategory)
		projects.GET("/:id", h.GetPublished)
		projects.POST("/:id/like", h.Like)
		projects.POST("/:id/view", h.View)
	}
}

// RegisterAdminRoutes registers the admin console endpoints
func (h *ProjectHandler) RegisterAdminRoutes(rg *gin.RouterGroup, uploadLimit gin.HandlerFunc) {
	projects := rg.Group("/projects")
	{
		projects.GET("", h.List)
		projects.PUT("/order", h.UpdateOrder)
		projects.GET("/:id", h.Get)
		projects.DELETE("/:id", h.Delete)
		projects.PATCH("/:id/status", h.UpdateStatus)
		projects.PATCH("/:id/featured", h.SetFeatured)

		if uploadLimit != nil {
			projects.POST("", uploadLimit, h.Create)
			projects.PUT("/:id", uploadLimit, h.Update)
		} else {
			projects.POST("", h.Create)
			projects.PUT("/:id", h.Update)
		}
	}
}

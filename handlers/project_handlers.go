package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/api/models"
	"portfolio/api/store"
)

type ProjectRepository interface {
	CreateProject(ctx context.Context, req models.ProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, req models.ProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	GetAllProjects(ctx context.Context) ([]models.Project, error)
	ListProjects(ctx context.Context, category string) ([]models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error)
}

// ProjectHandlers serves the public catalog reads and the admin CRUD.
type ProjectHandlers struct {
	Projects ProjectRepository
	log      *zerolog.Logger
}

func NewProjectHandlers(projects ProjectRepository, log *zerolog.Logger) *ProjectHandlers {
	return &ProjectHandlers{Projects: projects, log: log}
}

func bindProjectRequest(c *gin.Context) (models.ProjectRequest, bool) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return req, false
	}
	if !models.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown project category"})
		return req, false
	}
	return req, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return 0, false
	}
	return id, true
}

// ListPublic is the unauthenticated catalog, optionally filtered by
// ?category=.
func (h *ProjectHandlers) ListPublic(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown project category"})
		return
	}

	projects, err := h.Projects.ListProjects(c.Request.Context(), category)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandlers) GetBySlug(c *gin.Context) {
	project, err := h.Projects.GetProjectBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to get project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListAdmin returns every project in CMS order.
func (h *ProjectHandlers) ListAdmin(c *gin.Context) {
	projects, err := h.Projects.GetAllProjects(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list projects for admin")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandlers) Create(c *gin.Context) {
	req, ok := bindProjectRequest(c)
	if !ok {
		return
	}

	project, err := h.Projects.CreateProject(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "A project with this slug already exists"})
			return
		}
		h.log.Error().Err(err).Str("slug", req.Slug).Msg("failed to create project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	h.log.Info().Str("slug", project.Slug).Int64("id", project.ID).Msg("project created")
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandlers) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindProjectRequest(c)
	if !ok {
		return
	}

	project, err := h.Projects.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		case errors.Is(err, store.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "A project with this slug already exists"})
		default:
			h.log.Error().Err(err).Int64("id", id).Msg("failed to update project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		}
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Projects.DeleteProject(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.log.Error().Err(err).Int64("id", id).Msg("failed to delete project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	h.log.Info().Int64("id", id).Msg("project deleted")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

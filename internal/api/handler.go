package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/portfolio-api/internal/errors"
	"github.com/Kamar-Folarin/portfolio-api/internal/github"
	"github.com/Kamar-Folarin/portfolio-api/internal/project"
)

const healthTimeout = 3 * time.Second

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles HTTP requests
type Handler struct {
	projects    project.Service
	syncService github.SyncService
	db          Pinger
	logger      *logrus.Logger
}

// NewHandler creates a new handler
func NewHandler(projects project.Service, syncService github.SyncService, db Pinger, logger *logrus.Logger) *Handler {
	return &Handler{
		projects:    projects,
		syncService: syncService,
		db:          db,
		logger:      logger,
	}
}

// @Summary Health check
// @Description Reports service health after pinging the database
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.WithError(err).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "database unavailable"})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// @Summary List projects
// @Description Get one page of visible projects, most recently updated first
// @Tags projects
// @Produce json
// @Param search query string false "Case-insensitive match on name or description"
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Projects per page" default(9)
// @Success 200 {object} models.ProjectPage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
	page, err := getIntQueryParam(c, "page", project.DefaultPage)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid page parameter"})
		return
	}
	perPage, err := getIntQueryParam(c, "perPage", project.DefaultPerPage)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid perPage parameter"})
		return
	}

	result, err := h.projects.List(c.Request.Context(), project.ListParams{
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Create a project
// @Description Add a project to the portfolio by hand
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body project.CreateProjectRequest true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	var req project.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary Update a project
// @Description Partially update a project; omitted fields are left unchanged
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Project ID"
// @Param request body project.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{id} [put]
func (h *Handler) UpdateProject(c *gin.Context) {
	var req project.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Delete a project
// @Description Remove a project and return it
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
	deleted, err := h.projects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleted)
}

// @Summary Sync projects from GitHub
// @Description Import the configured account's repositories as projects
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SyncRequest false "Optional import cap override"
// @Success 200 {object} models.SyncSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /projects/sync [post]
func (h *Handler) SyncProjects(c *gin.Context) {
	var req SyncRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	limit := 0
	if req.Limit != nil {
		if *req.Limit < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = *req.Limit
	}

	summary, err := h.syncService.Sync(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status, message := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
	}
	c.JSON(status, ErrorResponse{Error: message})
}

// errorResponse maps an error to its HTTP status and client message
func errorResponse(err error) (int, string) {
	var (
		cfgErr      *apperrors.ConfigurationError
		upstreamErr *apperrors.UpstreamError
		appErr      *apperrors.AppError
	)

	switch {
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, cfgErr.Error()
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, fmt.Sprintf("GitHub request failed with status %d", upstreamErr.StatusCode)
	case apperrors.IsPersistence(err):
		return http.StatusInternalServerError, "failed to save projects"
	case errors.As(err, &appErr):
		switch appErr.Type {
		case apperrors.ErrNotFound:
			return http.StatusNotFound, appErr.Message
		case apperrors.ErrInvalidInput:
			return http.StatusBadRequest, appErr.Message
		case apperrors.ErrUnauthorized:
			return http.StatusUnauthorized, appErr.Message
		}
	}

	return http.StatusInternalServerError, "internal server error"
}

func getIntQueryParam(c *gin.Context, param string, defaultValue int) (int, error) {
	value := c.Query(param)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

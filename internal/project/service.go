package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-api/internal/db"
	apperrors "github.com/Kamar-Folarin/portfolio-api/internal/errors"
	"github.com/Kamar-Folarin/portfolio-api/internal/models"
	"github.com/Kamar-Folarin/portfolio-api/internal/utils"
	pkgutils "github.com/Kamar-Folarin/portfolio-api/pkg/utils"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 9
	MaxPerPage     = 100

	minNameLength        = 2
	minDescriptionLength = 5
)

// Store is the persistence the catalogue needs
type Store interface {
	ListProjects(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, int, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id string) (*models.Project, error)
}

// Service defines the interface for project catalogue operations
type Service interface {
	List(ctx context.Context, params ListParams) (*models.ProjectPage, error)
	Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id string) (*models.Project, error)
}

// ListParams selects one page of the public listing
type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

// CreateProjectRequest represents the request to add a project by hand
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Slug        *string `json:"slug,omitempty"`
	GitHubRepo  *string `json:"githubRepo,omitempty"`
	Homepage    *string `json:"homepage,omitempty"`
	Language    *string `json:"language,omitempty"`
	Stars       *int    `json:"stars,omitempty"`
	Visible     *bool   `json:"visible,omitempty"`
}

// UpdateProjectRequest is a partial update. Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	GitHubRepo  *string `json:"githubRepo,omitempty"`
	Homepage    *string `json:"homepage,omitempty"`
	Language    *string `json:"language,omitempty"`
	Stars       *int    `json:"stars,omitempty"`
	Visible     *bool   `json:"visible,omitempty"`
}

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	store  Store
	logger *logrus.Logger
}

var _ Service = (*ServiceImpl)(nil)

// NewService creates a new project service
func NewService(store Store, logger *logrus.Logger) *ServiceImpl {
	return &ServiceImpl{
		store:  store,
		logger: logger,
	}
}

// List returns the visible projects, most recently updated first
func (s *ServiceImpl) List(ctx context.Context, params ListParams) (*models.ProjectPage, error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	projects, total, err := s.store.ListProjects(ctx, models.ProjectFilter{
		Search:      strings.TrimSpace(params.Search),
		Page:        page,
		PerPage:     perPage,
		VisibleOnly: true,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list projects", err)
	}

	return &models.ProjectPage{
		Data: projects,
		Meta: models.PageMeta{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: TotalPages(total, perPage),
		},
	}, nil
}

// TotalPages is ceil(total/perPage), never less than one
func TotalPages(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Create validates the request and stores a new project
func (s *ServiceImpl) Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	slug := utils.Slugify(name)
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		explicit, err := explicitSlug(*req.Slug)
		if err != nil {
			return nil, err
		}
		slug = explicit
	}
	if slug == "" {
		return nil, apperrors.NewValidationError("slug must contain at least one letter or digit", nil)
	}

	homepage, err := optionalHomepage(req.Homepage)
	if err != nil {
		return nil, err
	}

	stars := 0
	if req.Stars != nil {
		if *req.Stars < 0 {
			return nil, apperrors.NewValidationError("stars must not be negative", nil)
		}
		stars = *req.Stars
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	project := &models.Project{
		Slug:        slug,
		Name:        name,
		Description: description,
		GitHubRepo:  optionalString(req.GitHubRepo),
		Homepage:    homepage,
		Language:    optionalString(req.Language),
		Stars:       stars,
		Visible:     visible,
	}

	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, s.storeError("create", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":   project.ID,
		"slug": project.Slug,
	}).Info("Project created")

	return project, nil
}

// Update applies a partial update to an existing project
func (s *ServiceImpl) Update(ctx context.Context, id string, req UpdateProjectRequest) (*models.Project, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, s.storeError("load", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		project.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		project.Description = description
	}
	if req.Slug != nil {
		slug, err := explicitSlug(*req.Slug)
		if err != nil {
			return nil, err
		}
		project.Slug = slug
	}
	if req.GitHubRepo != nil {
		project.GitHubRepo = optionalString(req.GitHubRepo)
	}
	if req.Homepage != nil {
		homepage, err := optionalHomepage(req.Homepage)
		if err != nil {
			return nil, err
		}
		project.Homepage = homepage
	}
	if req.Language != nil {
		project.Language = optionalString(req.Language)
	}
	if req.Stars != nil {
		if *req.Stars < 0 {
			return nil, apperrors.NewValidationError("stars must not be negative", nil)
		}
		project.Stars = *req.Stars
	}
	if req.Visible != nil {
		project.Visible = *req.Visible
	}

	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, s.storeError("update", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":   project.ID,
		"slug": project.Slug,
	}).Info("Project updated")

	return project, nil
}

// Delete removes a project and returns it
func (s *ServiceImpl) Delete(ctx context.Context, id string) (*models.Project, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	project, err := s.store.DeleteProject(ctx, id)
	if err != nil {
		return nil, s.storeError("delete", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":   project.ID,
		"slug": project.Slug,
	}).Info("Project deleted")

	return project, nil
}

func (s *ServiceImpl) storeError(op string, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return apperrors.NewNotFoundError("project not found", err)
	case errors.Is(err, db.ErrDuplicateSlug):
		return apperrors.NewValidationError("slug already exists", err)
	default:
		s.logger.WithError(err).WithField("op", op).Error("Project store failure")
		return apperrors.NewInternalError(fmt.Sprintf("failed to %s project", op), err)
	}
}

// explicitSlug stores a caller-supplied slug as given, lowercased.
func explicitSlug(raw string) (string, error) {
	slug, ok := utils.NormalizeSlug(raw)
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("invalid slug %q: only letters, digits, '.', '_' or '-' are allowed", raw), nil)
	}
	return slug, nil
}

// Project IDs are UUIDs; anything else cannot match a row.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFoundError("project not found", err)
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < minNameLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("name must be at least %d characters", minNameLength), nil)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) < minDescriptionLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("description must be at least %d characters", minDescriptionLength), nil)
	}
	return nil
}

func optionalHomepage(value *string) (*string, error) {
	homepage := optionalString(value)
	if homepage != nil && !pkgutils.IsValidHTTPURL(*homepage) {
		return nil, apperrors.NewValidationError("homepage must be a valid http(s) URL", nil)
	}
	return homepage, nil
}

// optionalString trims the value and maps blank strings to nil
func optionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

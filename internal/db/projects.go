package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Kamar-Folarin/portfolio-api/internal/models"
)

const projectColumns = `id, slug, name, description, github_repo, homepage, language,
	stars, visible, synced_at, created_at, updated_at`

const upsertProjectSQL = `
	INSERT INTO projects (
		id, slug, name, description, github_repo, homepage, language,
		stars, visible, synced_at, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	ON CONFLICT (slug) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		github_repo = EXCLUDED.github_repo,
		homepage = EXCLUDED.homepage,
		language = EXCLUDED.language,
		stars = EXCLUDED.stars,
		visible = EXCLUDED.visible,
		synced_at = EXCLUDED.synced_at,
		updated_at = NOW()`

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p          models.Project
		githubRepo sql.NullString
		homepage   sql.NullString
		language   sql.NullString
		syncedAt   sql.NullTime
	)

	if err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&githubRepo,
		&homepage,
		&language,
		&p.Stars,
		&p.Visible,
		&syncedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.GitHubRepo = nullableString(githubRepo)
	p.Homepage = nullableString(homepage)
	p.Language = nullableString(language)
	if syncedAt.Valid {
		t := syncedAt.Time
		p.SyncedAt = &t
	}

	return &p, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func translateWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateSlug
	}
	return err
}

// ListProjects returns one page of projects, newest update first, plus the
// total number of rows matching the filter
func (s *PostgresStore) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, int, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.VisibleOnly {
		conditions = append(conditions, "visible = TRUE")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	offset := (filter.Page - 1) * filter.PerPage
	args = append(args, filter.PerPage, offset)
	query := fmt.Sprintf("SELECT %s FROM projects%s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d",
		projectColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0, filter.PerPage)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, total, nil
}

// GetProject retrieves a project by its ID
func (s *PostgresStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// CreateProject inserts a project, assigning an ID when it has none
func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (
			id, slug, name, description, github_repo, homepage, language,
			stars, visible, synced_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`,
		project.ID,
		project.Slug,
		project.Name,
		project.Description,
		project.GitHubRepo,
		project.Homepage,
		project.Language,
		project.Stars,
		project.Visible,
		project.SyncedAt,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if err := translateWriteError(err); errors.Is(err, ErrDuplicateSlug) {
			return err
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// UpdateProject overwrites the editable fields of an existing project
func (s *PostgresStore) UpdateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project cannot be nil")
	}

	err := s.db.QueryRowContext(ctx, `
		UPDATE projects
		SET slug = $1,
			name = $2,
			description = $3,
			github_repo = $4,
			homepage = $5,
			language = $6,
			stars = $7,
			visible = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at`,
		project.Slug,
		project.Name,
		project.Description,
		project.GitHubRepo,
		project.Homepage,
		project.Language,
		project.Stars,
		project.Visible,
		project.ID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err := translateWriteError(err); errors.Is(err, ErrDuplicateSlug) {
			return err
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// DeleteProject deletes a project and returns the removed row
func (s *PostgresStore) DeleteProject(ctx context.Context, id string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, "DELETE FROM projects WHERE id = $1 RETURNING "+projectColumns, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return p, nil
}

// UpsertProjects creates or updates every project by slug inside one
// transaction. Any failure rolls the whole batch back. Rows sharing a slug
// are applied in order, so the last one wins.
func (s *PostgresStore) UpsertProjects(ctx context.Context, projects []*models.ProjectSync) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertProjectSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare project upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			p.Slug,
			p.Name,
			p.Description,
			p.GitHubRepo,
			p.Homepage,
			p.Language,
			p.Stars,
			p.Visible,
			p.SyncedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert project %s: %w", p.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project upsert transaction: %w", err)
	}

	return nil
}

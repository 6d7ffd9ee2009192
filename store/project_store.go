package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"portfolio/api/models"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrSlugTaken       = errors.New("project slug already exists")
)

type ProjectStore struct {
	db *sql.DB
}

func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, slug, summary, description, category, technologies,
		image_urls, live_url, repo_url, display_order, featured, start_date, end_date,
		created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Summary,
		&p.Description,
		&p.Category,
		pq.Array(&p.Technologies),
		pq.Array(&p.ImageURLs),
		&p.LiveURL,
		&p.RepoURL,
		&p.DisplayOrder,
		&p.Featured,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProject inserts a new project and returns it with the generated id
// and timestamps.
func (s *ProjectStore) CreateProject(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	query := fmt.Sprintf(`
		INSERT INTO projects (title, slug, summary, description, category, technologies,
			image_urls, live_url, repo_url, display_order, featured, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s;
	`, projectColumns)

	row := s.db.QueryRowContext(ctx, query,
		req.Title, req.Slug, req.Summary, req.Description, req.Category,
		pq.Array(req.Technologies), pq.Array(req.ImageURLs),
		req.LiveURL, req.RepoURL, req.DisplayOrder, req.Featured,
		req.StartDate, req.EndDate,
	)
	project, err := scanProject(row)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject replaces every editable field of the project with the given
// id.
func (s *ProjectStore) UpdateProject(ctx context.Context, id int64, req models.ProjectRequest) (*models.Project, error) {
	query := fmt.Sprintf(`
		UPDATE projects
		SET title = $1, slug = $2, summary = $3, description = $4, category = $5,
			technologies = $6, image_urls = $7, live_url = $8, repo_url = $9,
			display_order = $10, featured = $11, start_date = $12, end_date = $13,
			updated_at = now()
		WHERE id = $14
		RETURNING %s;
	`, projectColumns)

	row := s.db.QueryRowContext(ctx, query,
		req.Title, req.Slug, req.Summary, req.Description, req.Category,
		pq.Array(req.Technologies), pq.Array(req.ImageURLs),
		req.LiveURL, req.RepoURL, req.DisplayOrder, req.Featured,
		req.StartDate, req.EndDate, id,
	)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectStore) DeleteProject(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// GetAllProjects returns every project in CMS display order.
func (s *ProjectStore) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		ORDER BY display_order ASC, created_at DESC;
	`, projectColumns)

	return s.queryProjects(ctx, query)
}

// ListProjects returns the public catalog: featured first, then display
// order. An empty category means no filter.
func (s *ProjectStore) ListProjects(ctx context.Context, category string) ([]models.Project, error) {
	if category != "" {
		query := fmt.Sprintf(`
			SELECT %s
			FROM projects
			WHERE category = $1
			ORDER BY featured DESC, display_order ASC, created_at DESC;
		`, projectColumns)
		return s.queryProjects(ctx, query, category)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		ORDER BY featured DESC, display_order ASC, created_at DESC;
	`, projectColumns)
	return s.queryProjects(ctx, query)
}

func (s *ProjectStore) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		WHERE slug = $1;
	`, projectColumns)

	project, err := scanProject(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by slug: %w", err)
	}
	return project, nil
}

func (s *ProjectStore) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing projects: %w", err)
	}
	return projects, nil
}

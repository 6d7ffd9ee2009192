package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/api/models"
)

var projectCols = []string{
	"id", "title", "slug", "summary", "description", "category", "technologies",
	"image_urls", "live_url", "repo_url", "display_order", "featured",
	"start_date", "end_date", "created_at", "updated_at",
}

func newProjectRows(id int64, slug string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(projectCols).AddRow(
		id, "Portfolio Site", slug, "A summary", "Long description", "web",
		"{Go,TypeScript}", "{}", nil, nil, 1, true, nil, nil, now, now,
	)
}

func newProjectStore(t *testing.T) (*ProjectStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewProjectStore(db), mock, func() { db.Close() }
}

func testRequest() models.ProjectRequest {
	return models.ProjectRequest{
		Title:        "Portfolio Site",
		Slug:         "portfolio-site",
		Summary:      "A summary",
		Description:  "Long description",
		Category:     "web",
		Technologies: []string{"Go", "TypeScript"},
		DisplayOrder: 1,
		Featured:     true,
	}
}

func TestCreateProject(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects")).
		WillReturnRows(newProjectRows(7, "portfolio-site"))

	project, err := s.CreateProject(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), project.ID)
	assert.Equal(t, "portfolio-site", project.Slug)
	assert.Equal(t, []string{"Go", "TypeScript"}, project.Technologies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_DuplicateSlug(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "projects_slug_key"})

	_, err := s.CreateProject(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestUpdateProject_NotFound(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE projects")).
		WillReturnError(sql.ErrNoRows)

	_, err := s.UpdateProject(context.Background(), 99, testRequest())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDeleteProject(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.DeleteProject(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProject_NotFound(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.DeleteProject(context.Background(), 99), ErrProjectNotFound)
}

func TestGetProjectBySlug_NotFound(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE slug = $1")).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetProjectBySlug(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListProjects_CategoryFilter(t *testing.T) {
	s, mock, done := newProjectStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category = $1")).
		WithArgs("web").
		WillReturnRows(newProjectRows(1, "portfolio-site"))

	projects, err := s.ListProjects(context.Background(), "web")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "portfolio-site", projects[0].Slug)
}

package store

import (
	"context"
	"fmt"
	"time"

	"portfolio/api/database"
	"portfolio/api/models"
)

// AnalyticsStore persists the append-only telemetry records (custom events
// and project views) in ClickHouse. Nothing here updates or deletes.
type AnalyticsStore struct {
	DB *database.ClickHouseClient
}

func NewAnalyticsStore(chClient *database.ClickHouseClient) *AnalyticsStore {
	return &AnalyticsStore{DB: chClient}
}

func (s *AnalyticsStore) InsertEvent(ctx context.Context, event models.Event) error {
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_events (
			event_id, event_name, properties, visitor_id, session_id,
			page_path, ip_address, user_agent, created_at
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}

	if err := batch.Append(
		event.EventID,
		event.EventName,
		event.Properties,
		event.VisitorID,
		event.SessionID,
		event.PagePath,
		event.IPAddress,
		event.UserAgent,
		event.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send event insert: %w", err)
	}
	return nil
}

func (s *AnalyticsStore) InsertProjectView(ctx context.Context, view models.ProjectView) error {
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO project_views (
			view_id, project_slug, project_title, visitor_id, session_id,
			referrer, ip_address, user_agent, created_at
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare project view insert: %w", err)
	}

	if err := batch.Append(
		view.ViewID,
		view.ProjectSlug,
		view.ProjectTitle,
		view.VisitorID,
		view.SessionID,
		view.Referrer,
		view.IPAddress,
		view.UserAgent,
		view.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to append project view: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send project view insert: %w", err)
	}
	return nil
}

// EventCounts returns per-name event totals since the given time, most
// frequent first.
func (s *AnalyticsStore) EventCounts(ctx context.Context, since time.Time) ([]models.EventCountResult, error) {
	query := `
		SELECT event_name, count() AS total
		FROM analytics_events
		WHERE created_at >= ?
		GROUP BY event_name
		ORDER BY total DESC
	`
	rows, err := s.DB.Conn.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()

	var results []models.EventCountResult
	for rows.Next() {
		var r models.EventCountResult
		if err := rows.Scan(&r.EventName, &r.Count); err != nil {
			return nil, fmt.Errorf("failed to scan event counts row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during event counts query: %w", err)
	}
	return results, nil
}

// TopProjects returns the most viewed project slugs since the given time.
func (s *AnalyticsStore) TopProjects(ctx context.Context, since time.Time, limit uint64) ([]models.TopProjectResult, error) {
	if limit == 0 {
		limit = 10
	}
	query := `
		SELECT project_slug, any(project_title) AS title, count() AS total
		FROM project_views
		WHERE created_at >= ?
		GROUP BY project_slug
		ORDER BY total DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top projects: %w", err)
	}
	defer rows.Close()

	var results []models.TopProjectResult
	for rows.Next() {
		var r models.TopProjectResult
		if err := rows.Scan(&r.ProjectSlug, &r.ProjectTitle, &r.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top projects row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during top projects query: %w", err)
	}
	return results, nil
}

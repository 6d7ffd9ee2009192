package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio/api/models"
)

// PageViewStore persists page views in Postgres. Page views are the one
// telemetry record that gets mutated after insert: the page-exit beacon
// back-fills duration and bounce state.
type PageViewStore struct {
	db *sql.DB
}

func NewPageViewStore(db *sql.DB) *PageViewStore {
	return &PageViewStore{db: db}
}

func (s *PageViewStore) InsertPageView(ctx context.Context, pv models.PageView) error {
	query := `
		INSERT INTO page_views (page_path, referrer, user_agent, ip_address,
			country, city, region, timezone, device_type, browser, os, language,
			screen_size, session_id, visitor_id, utm_source, utm_medium,
			utm_campaign, utm_term, utm_content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20);
	`
	_, err := s.db.ExecContext(ctx, query,
		pv.PagePath, pv.Referrer, pv.UserAgent, pv.IPAddress,
		pv.Country, pv.City, pv.Region, pv.Timezone,
		pv.DeviceType, pv.Browser, pv.OS, pv.Language,
		pv.ScreenSize, pv.SessionID, pv.VisitorID,
		pv.UTMSource, pv.UTMMedium, pv.UTMCampaign, pv.UTMTerm, pv.UTMContent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page view: %w", err)
	}
	return nil
}

// RecordPageExit updates the most recently created page view for the
// (session, visitor) pair. A revisit within the same session can attribute
// the duration to the wrong view; that approximation is accepted. Returns
// the number of rows updated (0 or 1).
func (s *PageViewStore) RecordPageExit(ctx context.Context, exit models.PageExitRequest) (int64, error) {
	query := `
		UPDATE page_views
		SET duration = $1, is_bounce = $2
		WHERE id = (
			SELECT id FROM page_views
			WHERE session_id = $3 AND visitor_id = $4
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		);
	`
	result, err := s.db.ExecContext(ctx, query, exit.Duration, exit.IsBounce, exit.SessionID, exit.VisitorID)
	if err != nil {
		return 0, fmt.Errorf("failed to record page exit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read page exit result: %w", err)
	}
	return affected, nil
}

// DailyPageViews buckets views per day since the given time, with unique
// visitor counts, for the admin chart.
func (s *PageViewStore) DailyPageViews(ctx context.Context, since time.Time) ([]models.DailyPageViews, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day,
			count(*) AS views,
			count(DISTINCT visitor_id) AS unique_visitors
		FROM page_views
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily page views: %w", err)
	}
	defer rows.Close()

	var results []models.DailyPageViews
	for rows.Next() {
		var d models.DailyPageViews
		if err := rows.Scan(&d.Day, &d.Views, &d.UniqueVisitors); err != nil {
			return nil, fmt.Errorf("failed to scan daily page views row: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during daily page views query: %w", err)
	}
	return results, nil
}

// TopPages returns the most viewed paths since the given time.
func (s *PageViewStore) TopPages(ctx context.Context, since time.Time, limit uint64) ([]models.TopPageResult, error) {
	if limit == 0 {
		limit = 10
	}
	query := `
		SELECT page_path, count(*) AS view_count
		FROM page_views
		WHERE created_at >= $1
		GROUP BY page_path
		ORDER BY view_count DESC
		LIMIT $2;
	`
	rows, err := s.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top pages: %w", err)
	}
	defer rows.Close()

	var results []models.TopPageResult
	for rows.Next() {
		var r models.TopPageResult
		if err := rows.Scan(&r.PagePath, &r.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top pages row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during top pages query: %w", err)
	}
	return results, nil
}

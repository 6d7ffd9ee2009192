package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"portfolio/api/models"
	"portfolio/api/utils"
)

// PageViewStore is the Postgres-backed part of the telemetry pipeline.
type PageViewStore interface {
	InsertPageView(ctx context.Context, pv models.PageView) error
	RecordPageExit(ctx context.Context, exit models.PageExitRequest) (int64, error)
	DailyPageViews(ctx context.Context, since time.Time) ([]models.DailyPageViews, error)
	TopPages(ctx context.Context, since time.Time, limit uint64) ([]models.TopPageResult, error)
}

// EventStore is the ClickHouse-backed, append-only part.
type EventStore interface {
	InsertEvent(ctx context.Context, event models.Event) error
	InsertProjectView(ctx context.Context, view models.ProjectView) error
	EventCounts(ctx context.Context, since time.Time) ([]models.EventCountResult, error)
	TopProjects(ctx context.Context, since time.Time, limit uint64) ([]models.TopProjectResult, error)
}

// AnalyticsHandlers serves the four ingestion beacons plus the admin
// summary endpoints. Beacons are fire-and-forget: the browser never
// inspects the response, so failures reduce to a logged 500.
type AnalyticsHandlers struct {
	PageViews PageViewStore
	Events    EventStore
	log       *zerolog.Logger
}

func NewAnalyticsHandlers(pageViews PageViewStore, events EventStore, log *zerolog.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{PageViews: pageViews, Events: events, log: log}
}

const storeTimeout = 15 * time.Second

// TrackPageView inserts one page-view row per call. No de-duplication:
// repeated beacons create repeated rows.
func (h *AnalyticsHandlers) TrackPageView(c *gin.Context) {
	var req models.PageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userAgent := c.Request.UserAgent()
	if req.Browser == "" && req.OS == "" && req.DeviceType == "" {
		browser, os, device := utils.DeriveClient(userAgent)
		req.Browser, req.OS, req.DeviceType = browser, os, device
	}

	pv := models.PageView{
		PagePath:    req.PagePath,
		Referrer:    req.Referrer,
		UserAgent:   userAgent,
		IPAddress:   utils.ClientIP(c.Request),
		Country:     req.Country,
		City:        req.City,
		Region:      req.Region,
		Timezone:    req.Timezone,
		DeviceType:  req.DeviceType,
		Browser:     req.Browser,
		OS:          req.OS,
		Language:    req.Language,
		ScreenSize:  req.ScreenSize,
		SessionID:   req.SessionID,
		VisitorID:   req.VisitorID,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		UTMTerm:     req.UTMTerm,
		UTMContent:  req.UTMContent,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.PageViews.InsertPageView(ctx, pv); err != nil {
		h.log.Error().Err(err).Str("page_path", pv.PagePath).Msg("failed to insert page view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record page view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TrackPageExit back-fills duration and bounce state on the most recent
// page view for the (session, visitor) pair. Matching zero rows is still a
// success; the row may simply have never been recorded.
func (h *AnalyticsHandlers) TrackPageExit(c *gin.Context) {
	var req models.PageExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if _, err := h.PageViews.RecordPageExit(ctx, req); err != nil {
		h.log.Error().Err(err).Str("session_id", req.SessionID).Msg("failed to record page exit")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record page exit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TrackEvent appends one event row per call. Properties are stored as the
// raw JSON the client sent; no shape validation.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	properties := "{}"
	if len(req.Properties) > 0 {
		properties = string(req.Properties)
	}

	event := models.Event{
		EventID:    uuid.New().String(),
		EventName:  req.EventName,
		Properties: properties,
		VisitorID:  req.VisitorID,
		SessionID:  req.SessionID,
		PagePath:   req.PagePath,
		IPAddress:  utils.ClientIP(c.Request),
		UserAgent:  c.Request.UserAgent(),
		CreatedAt:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.Events.InsertEvent(ctx, event); err != nil {
		h.log.Error().Err(err).Str("event_name", event.EventName).Msg("failed to insert event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TrackProjectView appends one project-view row. The slug is not checked
// against the projects table; views of deleted projects still count.
func (h *AnalyticsHandlers) TrackProjectView(c *gin.Context) {
	var req models.ProjectViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view := models.ProjectView{
		ViewID:       uuid.New().String(),
		ProjectSlug:  req.ProjectSlug,
		ProjectTitle: req.ProjectTitle,
		VisitorID:    req.VisitorID,
		SessionID:    req.SessionID,
		Referrer:     req.Referrer,
		IPAddress:    utils.ClientIP(c.Request),
		UserAgent:    c.Request.UserAgent(),
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.Events.InsertProjectView(ctx, view); err != nil {
		h.log.Error().Err(err).Str("project_slug", view.ProjectSlug).Msg("failed to insert project view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record project view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// sinceParam reads ?days=N, defaulting to the last 7 days.
func sinceParam(c *gin.Context) (time.Time, bool) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'days' parameter. Must be a positive integer."})
			return time.Time{}, false
		}
		days = parsed
	}
	return time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour), true
}

func limitParam(c *gin.Context) (uint64, bool) {
	var limit uint64 = 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return 0, false
		}
		limit = parsed
	}
	return limit, true
}

func (h *AnalyticsHandlers) GetDailyPageViews(c *gin.Context) {
	since, ok := sinceParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	results, err := h.PageViews.DailyPageViews(ctx, since)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to query daily page views")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve page view statistics"})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *AnalyticsHandlers) GetTopPages(c *gin.Context) {
	since, ok := sinceParam(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	results, err := h.PageViews.TopPages(ctx, since, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to query top pages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top page statistics"})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *AnalyticsHandlers) GetEventCounts(c *gin.Context) {
	since, ok := sinceParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	results, err := h.Events.EventCounts(ctx, since)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to query event counts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event statistics"})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *AnalyticsHandlers) GetTopProjects(c *gin.Context) {
	since, ok := sinceParam(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	results, err := h.Events.TopProjects(ctx, since, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to query top projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project view statistics"})
		return
	}
	c.JSON(http.StatusOK, results)
}

package models

import (
	"encoding/json"
	"time"
)

// PageView is one rendered page load, stored in Postgres. Duration and
// IsBounce start empty and are back-filled by the page-exit beacon.
type PageView struct {
	ID          int64     `json:"id"`
	PagePath    string    `json:"page_path"`
	Referrer    string    `json:"referrer"`
	UserAgent   string    `json:"user_agent"`
	IPAddress   string    `json:"ip_address"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Region      string    `json:"region"`
	Timezone    string    `json:"timezone"`
	DeviceType  string    `json:"device_type"`
	Browser     string    `json:"browser"`
	OS          string    `json:"os"`
	Language    string    `json:"language"`
	ScreenSize  string    `json:"screen_size"`
	SessionID   string    `json:"session_id"`
	VisitorID   string    `json:"visitor_id"`
	UTMSource   string    `json:"utm_source"`
	UTMMedium   string    `json:"utm_medium"`
	UTMCampaign string    `json:"utm_campaign"`
	UTMTerm     string    `json:"utm_term"`
	UTMContent  string    `json:"utm_content"`
	Duration    int64     `json:"duration"`
	IsBounce    bool      `json:"is_bounce"`
	CreatedAt   time.Time `json:"created_at"`
}

// PageViewRequest is the page-view beacon payload. Everything except the
// path is optional; IP and user agent are derived server-side.
type PageViewRequest struct {
	PagePath    string `json:"page_path" binding:"required"`
	Referrer    string `json:"referrer"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Timezone    string `json:"timezone"`
	DeviceType  string `json:"device_type"`
	Browser     string `json:"browser"`
	OS          string `json:"os"`
	Language    string `json:"language"`
	ScreenSize  string `json:"screen_size"`
	SessionID   string `json:"session_id"`
	VisitorID   string `json:"visitor_id"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMTerm     string `json:"utm_term"`
	UTMContent  string `json:"utm_content"`
}

// PageExitRequest back-fills duration and bounce state on the most recent
// page view for the (session, visitor) pair.
type PageExitRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	VisitorID string `json:"visitor_id" binding:"required"`
	Duration  int64  `json:"duration"`
	IsBounce  bool   `json:"is_bounce"`
}

// Event is a named client-side action, stored append-only in ClickHouse.
// Properties is kept opaque; no shape is enforced beyond valid JSON.
type Event struct {
	EventID    string    `json:"event_id"`
	EventName  string    `json:"event_name"`
	Properties string    `json:"properties"`
	VisitorID  string    `json:"visitor_id"`
	SessionID  string    `json:"session_id"`
	PagePath   string    `json:"page_path"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

type EventRequest struct {
	EventName  string          `json:"event_name" binding:"required"`
	Properties json.RawMessage `json:"properties,omitempty"`
	VisitorID  string          `json:"visitor_id"`
	SessionID  string          `json:"session_id"`
	PagePath   string          `json:"page_path"`
}

// ProjectView records a view of a project detail page. Stored append-only
// in ClickHouse; the slug is not checked against the projects table.
type ProjectView struct {
	ViewID       string    `json:"view_id"`
	ProjectSlug  string    `json:"project_slug"`
	ProjectTitle string    `json:"project_title"`
	VisitorID    string    `json:"visitor_id"`
	SessionID    string    `json:"session_id"`
	Referrer     string    `json:"referrer"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProjectViewRequest struct {
	ProjectSlug  string `json:"project_slug" binding:"required"`
	ProjectTitle string `json:"project_title"`
	VisitorID    string `json:"visitor_id"`
	SessionID    string `json:"session_id"`
	Referrer     string `json:"referrer"`
}

// DailyPageViews is one bucket of the admin page-view chart.
type DailyPageViews struct {
	Day            time.Time `json:"day"`
	Views          uint64    `json:"views"`
	UniqueVisitors uint64    `json:"unique_visitors"`
}

type TopPageResult struct {
	PagePath string `json:"page_path"`
	Count    uint64 `json:"count"`
}

type EventCountResult struct {
	EventName string `json:"event_name"`
	Count     uint64 `json:"count"`
}

type TopProjectResult struct {
	ProjectSlug  string `json:"project_slug"`
	ProjectTitle string `json:"project_title"`
	Count        uint64 `json:"count"`
}

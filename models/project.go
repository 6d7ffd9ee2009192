package models

import "time"

// Project categories recognized by the CMS.
const (
	CategoryWeb     = "web"
	CategoryMobile  = "mobile"
	CategoryAIML    = "ai-ml"
	CategorySystems = "systems"
	CategoryOther   = "other"
)

func IsValidCategory(category string) bool {
	switch category {
	case CategoryWeb, CategoryMobile, CategoryAIML, CategorySystems, CategoryOther:
		return true
	default:
		return false
	}
}

// Project is a portfolio entry managed through the admin CMS.
type Project struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Technologies []string   `json:"technologies"`
	ImageURLs    []string   `json:"image_urls"`
	LiveURL      *string    `json:"live_url,omitempty"`
	RepoURL      *string    `json:"repo_url,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Featured     bool       `json:"featured"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ProjectRequest is the create/update payload for a project.
type ProjectRequest struct {
	Title        string     `json:"title" binding:"required"`
	Slug         string     `json:"slug" binding:"required"`
	Summary      string     `json:"summary"`
	Description  string     `json:"description" binding:"required"`
	Category     string     `json:"category" binding:"required"`
	Technologies []string   `json:"technologies" binding:"required,min=1"`
	ImageURLs    []string   `json:"image_urls"`
	LiveURL      *string    `json:"live_url,omitempty"`
	RepoURL      *string    `json:"repo_url,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Featured     bool       `json:"featured"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

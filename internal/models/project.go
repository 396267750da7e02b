package models

import "time"

// Project is a portfolio entry, either created by an admin or imported from GitHub.
type Project struct {
	BaseModel
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GitHubRepo  *string    `json:"githubRepo"`
	Homepage    *string    `json:"homepage"`
	Language    *string    `json:"language"`
	Stars       int        `json:"stars"`
	Visible     bool       `json:"visible"`
	SyncedAt    *time.Time `json:"syncedAt"`
}

// ProjectSync carries the fields a GitHub sync writes for one project. The
// slug is the natural key; everything else overwrites the stored row.
type ProjectSync struct {
	Slug        string
	Name        string
	Description string
	GitHubRepo  string
	Homepage    string
	Language    *string
	Stars       int
	Visible     bool
	SyncedAt    time.Time
}

// ProjectFilter selects a page of projects
type ProjectFilter struct {
	Search      string
	Page        int
	PerPage     int
	VisibleOnly bool
}

// ProjectPage is one page of projects with its pagination metadata
type ProjectPage struct {
	Data []*Project `json:"data"`
	Meta PageMeta   `json:"meta"`
}

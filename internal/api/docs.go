package api

import (
	_ "github.com/Kamar-Folarin/portfolio-api/docs"
)

// ErrorResponse represents an API error
// @Description Error response from the API
// @swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// @example project not found
	Error string `json:"error" example:"project not found"`
}

// HealthResponse is returned by the health check
// @Description Service health
// @swagger:model HealthResponse
type HealthResponse struct {
	// Always "ok" when the database answered
	Status string `json:"status" example:"ok"`
	// Server time, RFC3339
	Timestamp string `json:"timestamp" example:"2024-03-20T00:00:00Z"`
}

// SyncRequest is the optional body of a sync trigger
// @Description Overrides the configured import cap for one run
// @swagger:model SyncRequest
type SyncRequest struct {
	// Maximum number of projects to import, at least 1
	// @example 10
	Limit *int `json:"limit,omitempty" example:"10"`
}

package ports

import (
	"context"
)

// HTTPServer defines the interface for the HTTP server
type HTTPServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the JSON body of the health endpoint
type HealthResponse struct {
	Status                 string `json:"status"`
	GoogleAPIKeyConfigured bool   `json:"google_api_key_configured"`
}

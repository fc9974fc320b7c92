package api

import "github.com/bcallard/smfdump/pkg/dump"

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Bind string
	Port int
}

// RunStore is the archive surface the server reads from.
type RunStore interface {
	ListRuns() ([]dump.Summary, error)
	LoadSummary(runID string) (dump.Summary, error)
	LoadRecords(runID string, family, subtype uint8) ([]map[string]any, error)
}

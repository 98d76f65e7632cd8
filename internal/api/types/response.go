// internal/api/types/response.go
package types

import "time"

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine-readable code alongside the human-readable message.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Meta holds response metadata for list endpoints.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationMeta builds list metadata from the page window and total count.
func NewPaginationMeta(page, limit int, total int64) *Meta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &Meta{
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

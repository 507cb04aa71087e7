// Package dto holds the console BFF's request parsing, response bodies and
// RFC 9457 problem responses.
package dto

// ListResponse is a master-data collection.
type ListResponse[T any] struct {
	Items       []T    `json:"items"`
	Total       int    `json:"total"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// SelectionResponse reports the outcome of a selection toggle.
type SelectionResponse struct {
	Accepted bool `json:"accepted"`
}

// DraftResponse wraps the employee draft with its save status.
type DraftResponse[T any] struct {
	Draft   T      `json:"draft"`
	Dirty   bool   `json:"dirty"`
	SavedAt string `json:"savedAt,omitempty"`
	Error   string `json:"error,omitempty"`
}

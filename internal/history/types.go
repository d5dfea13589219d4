package history

import (
	"encoding/json"
	"time"
)

// QueryRecord is a generated query.
type QueryRecord struct {
	ID        string    `json:"id"`
	QueryText string    `json:"query_text"`
	QueryType string    `json:"query_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorReport is an analyzed error message and the suggested solution.
type ErrorReport struct {
	ID        string    `json:"id"`
	ErrorText string    `json:"error_text"`
	Solution  string    `json:"solution"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchRecord is a documentation search.
type SearchRecord struct {
	ID          string    `json:"id"`
	SearchTerm  string    `json:"search_term"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// SchemaSnapshot is a successful schema analysis.
type SchemaSnapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Structure json.RawMessage `json:"structure"`
	CreatedAt time.Time       `json:"created_at"`
}

// DefaultLimit and MaxLimit bound list queries.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

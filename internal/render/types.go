package render

import "encoding/json"

// QueryPayload is the success shape for the query form.
type QueryPayload struct {
	Query string `json:"query"`
}

// ErrorAnalysisPayload is the success shape for the error form.
type ErrorAnalysisPayload struct {
	ErrorType   string `json:"error_type"`
	Explanation string `json:"explanation"`
	Solution    string `json:"solution"`
	ErrorCode   string `json:"error_code,omitempty"`
}

// Column describes one table column.
type Column struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Nullable  bool            `json:"nullable"`
	Default   json.RawMessage `json:"default,omitempty"`
	IsPrimary bool            `json:"is_primary,omitempty"`
}

// ForeignKey describes a foreign-key constraint.
type ForeignKey struct {
	Name            string   `json:"name"`
	Columns         []string `json:"columns"`
	ReferredTable   string   `json:"referred_table"`
	ReferredColumns []string `json:"referred_columns"`
}

// Index describes a table index.
type Index struct {
	Name    string   `json:"name"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// SchemaPayload is the success shape for the schema form.
type SchemaPayload struct {
	TableName           string          `json:"table_name"`
	Columns             []Column        `json:"columns"`
	PrimaryKey          []string        `json:"primary_key,omitempty"`
	ForeignKeys         []ForeignKey    `json:"foreign_keys,omitempty"`
	Indexes             []Index         `json:"indexes,omitempty"`
	CreateTableSQL      string          `json:"create_table_sql,omitempty"`
	SampleDataStructure json.RawMessage `json:"sample_data_structure,omitempty"`
}

// DocResult is one documentation search hit.
type DocResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// DocSearchPayload is the success shape for the documentation form.
type DocSearchPayload struct {
	Results []DocResult `json:"results"`
}

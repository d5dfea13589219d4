package schema

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by the analyzer.
var (
	ErrTableNotFound       = errors.New("table not found")
	ErrUnsupportedDatabase = errors.New("Unsupported database type. Only PostgreSQL is supported.")
	ErrInvalidConnString   = errors.New(`Invalid connection format. Use "host:port/database" or a full connection URL.`)
)

type tableNotFoundError struct {
	name string
}

func (e *tableNotFoundError) Error() string {
	return fmt.Sprintf("Table '%s' not found in the database.", e.name)
}

func (e *tableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

// Column describes one table column. Default is "None" when the column
// has no default expression.
type Column struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Nullable  bool   `json:"nullable"`
	Default   string `json:"default"`
	IsPrimary bool   `json:"is_primary"`
}

// ForeignKey describes a foreign-key constraint.
type ForeignKey struct {
	Name            string   `json:"name"`
	Columns         []string `json:"columns"`
	ReferredTable   string   `json:"referred_table"`
	ReferredColumns []string `json:"referred_columns"`
}

// Index describes a non-primary index.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

// Constraint is one constrained column of a table constraint. A
// multi-column constraint appears once per column.
type Constraint struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Column     string `json:"column"`
	Deferrable bool   `json:"deferrable"`
	Deferred   bool   `json:"deferred"`
	Definition string `json:"definition,omitempty"`
}

// Analysis is the full description of one table.
type Analysis struct {
	TableName           string       `json:"table_name"`
	Columns             []Column     `json:"columns"`
	PrimaryKey          []string     `json:"primary_key"`
	ForeignKeys         []ForeignKey `json:"foreign_keys"`
	Indexes             []Index      `json:"indexes"`
	Constraints         []Constraint `json:"constraints"`
	CreateTableSQL      string       `json:"create_table_sql"`
	SampleDataStructure string       `json:"sample_data_structure"`
}

// TableInfo is one entry of the table listing.
type TableInfo struct {
	Schema      string   `json:"schema"`
	Name        string   `json:"name"`
	ColumnCount int      `json:"column_count"`
	PrimaryKey  []string `json:"primary_key"`
	FullName    string   `json:"full_name"`
}

// Inspector reads catalog information from a live database.
type Inspector interface {
	// FindSchema returns the schema holding table. An empty schema
	// searches every user schema, preferring public.
	FindSchema(ctx context.Context, schema, table string) (string, error)
	Columns(ctx context.Context, schema, table string) ([]Column, error)
	PrimaryKey(ctx context.Context, schema, table string) ([]string, error)
	ForeignKeys(ctx context.Context, schema, table string) ([]ForeignKey, error)
	Indexes(ctx context.Context, schema, table string) ([]Index, error)
	Constraints(ctx context.Context, schema, table string) ([]Constraint, error)
	Tables(ctx context.Context) ([]TableInfo, error)
	Close()
}

// Connector opens an Inspector for a normalized connection URL.
type Connector func(ctx context.Context, connURL string) (Inspector, error)

// AnalyzeRequest is the schema form's body.
type AnalyzeRequest struct {
	ConnectionString string `json:"connection_string" validate:"required"`
	TableName        string `json:"table_name" validate:"required"`
}

func (AnalyzeRequest) ValidationMessage() string {
	return "Connection string and table name are required"
}

// TableInfoRequest lists the tables reachable through a connection.
type TableInfoRequest struct {
	ConnectionString string `json:"connection_string" validate:"required"`
}

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/pgagent/internal/db"
)

// Store persists the history log.
type Store struct {
	db *db.DB
}

// NewStore creates a new history store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordQuery logs a generated query.
func (s *Store) RecordQuery(ctx context.Context, queryText, queryType string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_history (id, query_text, query_type, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), queryText, queryType, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting query history: %w", err)
	}
	return nil
}

// RecordError logs an analyzed error.
func (s *Store) RecordError(ctx context.Context, errorText, solution string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO error_reports (id, error_text, solution, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), errorText, solution, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting error report: %w", err)
	}
	return nil
}

// RecordSearch logs a documentation search.
func (s *Store) RecordSearch(ctx context.Context, term string, resultCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documentation_access (id, search_term, result_count, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), term, resultCount, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting documentation access: %w", err)
	}
	return nil
}

// RecordSchema logs a schema analysis. structure is stored as JSON.
func (s *Store) RecordSchema(ctx context.Context, name string, structure any) error {
	data, err := json.Marshal(structure)
	if err != nil {
		return fmt.Errorf("marshalling schema structure: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO schema_snapshots (id, name, structure, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting schema snapshot: %w", err)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ListQueries returns generated queries, newest first.
func (s *Store) ListQueries(ctx context.Context, limit int) ([]QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query_text, query_type, created_at FROM query_history ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close()

	var out []QueryRecord
	for rows.Next() {
		var q QueryRecord
		if err := rows.Scan(&q.ID, &q.QueryText, &q.QueryType, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ListErrors returns error reports, newest first.
func (s *Store) ListErrors(ctx context.Context, limit int) ([]ErrorReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, error_text, solution, created_at FROM error_reports ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing error reports: %w", err)
	}
	defer rows.Close()

	var out []ErrorReport
	for rows.Next() {
		var e ErrorReport
		if err := rows.Scan(&e.ID, &e.ErrorText, &e.Solution, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning error report: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListSearches returns documentation searches, newest first.
func (s *Store) ListSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, search_term, result_count, created_at FROM documentation_access ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	defer rows.Close()

	var out []SearchRecord
	for rows.Next() {
		var r SearchRecord
		if err := rows.Scan(&r.ID, &r.SearchTerm, &r.ResultCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListSchemas returns schema snapshots, newest first.
func (s *Store) ListSchemas(ctx context.Context, limit int) ([]SchemaSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, structure, created_at FROM schema_snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing schema snapshots: %w", err)
	}
	defer rows.Close()

	var out []SchemaSnapshot
	for rows.Next() {
		var snap SchemaSnapshot
		var structure string
		if err := rows.Scan(&snap.ID, &snap.Name, &structure, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning schema snapshot: %w", err)
		}
		snap.Structure = json.RawMessage(structure)
		out = append(out, snap)
	}
	return out, rows.Err()
}

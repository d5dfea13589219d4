package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/pgagent/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewStore(d)
}

func TestRecordAndListQueries(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.RecordQuery(ctx, "SELECT 1;", "select"))
	require.NoError(t, s.RecordQuery(ctx, "DELETE FROM t WHERE id = 1;", "delete"))

	got, err := s.ListQueries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "delete", got[0].QueryType, "newest first")
	assert.Equal(t, "SELECT 1;", got[1].QueryText)
	assert.NotEmpty(t, got[0].ID)
}

func TestRecordAndListOthers(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.RecordError(ctx, "ERROR: syntax error", "1. Fix it"))
	require.NoError(t, s.RecordSearch(ctx, "vacuum", 7))
	require.NoError(t, s.RecordSchema(ctx, "users", map[string]any{"table_name": "users"}))

	errs, err := s.ListErrors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "1. Fix it", errs[0].Solution)

	searches, err := s.ListSearches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, searches, 1)
	assert.Equal(t, 7, searches[0].ResultCount)

	schemas, err := s.ListSchemas(ctx, 10)
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.JSONEq(t, `{"table_name":"users"}`, string(schemas[0].Structure))
}

func TestListLimit(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordSearch(ctx, "term", i))
	}

	got, err := s.ListSearches(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, DefaultLimit, clampLimit(-3))
	assert.Equal(t, 10, clampLimit(10))
	assert.Equal(t, MaxLimit, clampLimit(10000))
}

func TestRoutes(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	require.NoError(t, s.RecordQuery(ctx, "SELECT 1;", "select"))

	r := chi.NewRouter()
	RegisterRoutes(r, s)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/queries?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []QueryRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "SELECT 1;", got[0].QueryText)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/errors", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

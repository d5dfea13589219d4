package querygen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "select defaults to star",
			req:  Request{QueryType: TypeSelect, TableName: "users"},
			want: "SELECT * FROM users;",
		},
		{
			name: "empty type means select",
			req:  Request{TableName: "users", Columns: "id, email"},
			want: "SELECT id, email FROM users;",
		},
		{
			name: "select with every clause",
			req: Request{
				QueryType: TypeSelect, TableName: "orders o", Columns: "c.name, count(*)",
				JoinTable: "customers c", JoinCondition: "o.customer_id = c.id",
				Conditions: "o.total > 10", GroupBy: "c.name", OrderBy: "count(*) DESC", Limit: "5",
			},
			want: "SELECT c.name, count(*) FROM orders o JOIN customers c ON o.customer_id = c.id WHERE o.total > 10 GROUP BY c.name ORDER BY count(*) DESC LIMIT 5;",
		},
		{
			name: "join needs both parts",
			req:  Request{TableName: "orders", JoinTable: "customers"},
			want: "SELECT * FROM orders;",
		},
		{
			name: "question marks in raw conditions are kept",
			req:  Request{TableName: "docs", Conditions: "data ? 'key'"},
			want: "SELECT * FROM docs WHERE data ? 'key';",
		},
		{
			name: "insert with placeholders",
			req:  Request{QueryType: TypeInsert, TableName: "users", Columns: "name, email"},
			want: "INSERT INTO users (name,email) VALUES ($1,$2);",
		},
		{
			name: "insert returning id",
			req:  Request{QueryType: TypeInsert, TableName: "users", Columns: "id, name"},
			want: "INSERT INTO users (id,name) VALUES ($1,$2) RETURNING id;",
		},
		{
			name: "insert column containing id is not id",
			req:  Request{QueryType: TypeInsert, TableName: "orders", Columns: "paid, user_id"},
			want: "INSERT INTO orders (paid,user_id) VALUES ($1,$2);",
		},
		{
			name: "update from column list",
			req:  Request{QueryType: TypeUpdate, TableName: "users", Columns: "name, email", Conditions: "id = 7"},
			want: "UPDATE users SET name = $1, email = $2 WHERE id = 7 RETURNING id;",
		},
		{
			name: "update raw assignments",
			req:  Request{QueryType: TypeUpdate, TableName: "users", Columns: "score = coalesce(score, 0) + 1, tag = 'a,b'"},
			want: "UPDATE users SET score = coalesce(score, 0) + 1, tag = 'a,b';",
		},
		{
			name: "delete with conditions",
			req:  Request{QueryType: TypeDelete, TableName: "sessions", Conditions: "expires_at < now()"},
			want: "DELETE FROM sessions WHERE expires_at < now() RETURNING id;",
		},
		{
			name: "delete without conditions is guarded",
			req:  Request{QueryType: TypeDelete, TableName: "sessions"},
			want: "DELETE FROM sessions WHERE 1=0; " + DeleteGuard,
		},
		{
			name: "create table",
			req:  Request{QueryType: TypeCreateTable, TableName: "tags", Columns: "name TEXT NOT NULL"},
			want: "CREATE TABLE tags (\n    id SERIAL PRIMARY KEY,\n    name TEXT NOT NULL\n);",
		},
		{
			name: "create table placeholder columns",
			req:  Request{QueryType: TypeCreateTable, TableName: "tags"},
			want: "CREATE TABLE tags (\n    id SERIAL PRIMARY KEY,\n    column_name data_type\n);",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{"missing table", Request{QueryType: TypeSelect}, "Table name is required"},
		{"blank table", Request{TableName: "   "}, "Table name is required"},
		{"unsupported", Request{QueryType: "merge", TableName: "t"}, "Unsupported query type: merge"},
		{"insert without columns", Request{QueryType: TypeInsert, TableName: "t"}, "Column names are required for INSERT statement"},
		{"update without set", Request{QueryType: TypeUpdate, TableName: "t"}, "SET clause is required for UPDATE statement"},
		{"bad assignment", Request{QueryType: TypeUpdate, TableName: "t", Columns: "a = 1, b"}, `invalid SET assignment "b"`},
		{"bad limit", Request{TableName: "t", Limit: "ten"}, `LIMIT must be a non-negative integer, got "ten"`},
		{"negative limit", Request{TableName: "t", Limit: "-1"}, `LIMIT must be a non-negative integer, got "-1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := splitTopLevel(`a = f(x, y), b = "q,r", c = 'it''s, ok'`)
	require.Len(t, got, 3)
	assert.Equal(t, " b = \"q,r\"", got[1])
	assert.Equal(t, " c = 'it''s, ok'", got[2])
}

func TestTemplatesCoverEveryType(t *testing.T) {
	tpls := Templates()
	for _, qt := range TemplateOrder {
		tpl, ok := tpls[qt]
		require.True(t, ok, "missing template for %s", qt)
		assert.NotEmpty(t, tpl.Title)
		assert.NotEmpty(t, tpl.Template)
		assert.NotEmpty(t, tpl.Example)
	}
	assert.Len(t, JoinExamples(), 4)
}

type fakeRecorder struct {
	queries []string
	err     error
}

func (f *fakeRecorder) RecordQuery(_ context.Context, text, _ string) error {
	f.queries = append(f.queries, text)
	return f.err
}

func TestRoutesGenerate(t *testing.T) {
	rec := &fakeRecorder{}
	r := chi.NewRouter()
	RegisterRoutes(r, rec, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/query/generate",
		strings.NewReader(`{"query_type":"select","table_name":"users"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SELECT * FROM users;", body["query"])
	assert.Equal(t, []string{"SELECT * FROM users;"}, rec.queries)
}

func TestRoutesGenerateRecorderFailureStillAnswers(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, &fakeRecorder{err: errors.New("disk full")}, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/query/generate", strings.NewReader(`{"table_name":"users"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesGenerateValidation(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, nil, zerolog.Nop())

	tests := []struct {
		body string
		want string
	}{
		{`{"query_type":"select"}`, "Table name is required"},
		{`{"query_type":"insert","table_name":"t"}`, "Column names are required for INSERT statement"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/query/generate", strings.NewReader(tt.body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"`+tt.want+`"}`, w.Body.String())
	}
}

func TestRoutesTemplates(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, nil, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/query/templates", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SELECT - Retrieve Data")
}

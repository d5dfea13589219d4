package view

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/pgagent/internal/db"
	"github.com/ziadkadry99/pgagent/internal/forms"
	"github.com/ziadkadry99/pgagent/internal/highlight"
	"github.com/ziadkadry99/pgagent/internal/prefs"
	"github.com/ziadkadry99/pgagent/internal/querygen"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
)

func prefsWith(t *testing.T, tab string, collapsed bool) *prefs.Service {
	t.Helper()
	svc := prefs.NewService(prefs.NewMemoryStorage())
	ctx := context.Background()
	if tab != "" {
		require.NoError(t, svc.SetActiveTab(ctx, tab))
	}
	require.NoError(t, svc.SetSidebarCollapsed(ctx, collapsed))
	return svc
}

func TestPageRestoresPreferences(t *testing.T) {
	vi := NewInitializer(forms.NewController())
	page, err := vi.Page(context.Background(), prefsWith(t, "#schema", true))
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, `<body class="sidebar-collapsed"`)
	assert.Contains(t, html, `class="tab-pane fade show active" id="schema"`)
	assert.Contains(t, html, `class="tab-pane fade" id="query"`)
}

func TestPageIgnoresUnknownTab(t *testing.T) {
	vi := NewInitializer(forms.NewController())
	page, err := vi.Page(context.Background(), prefsWith(t, "#nope", false))
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, `class="tab-pane fade show active" id="query"`)
	assert.NotContains(t, html, "sidebar-collapsed\"")
}

func TestPageDOMContract(t *testing.T) {
	vi := NewInitializer(forms.NewController())
	page, err := vi.Page(context.Background(), prefsWith(t, "", false))
	require.NoError(t, err)
	html := string(page)

	for _, id := range []string{
		"conditions", "columns", "error_text", "joinFields", "columnLabel",
		"columnHelp", "conditionFields", "orderByFields", "limitFields", "sidebarToggle",
	} {
		assert.Contains(t, html, `id="`+id+`"`, "missing #%s", id)
	}
	for id, f := range PageForms {
		assert.Contains(t, html, `<form id="`+id+`" action="`+f.Action+`" method="POST" data-async="true" data-result-container="`+f.ResultContainer+`">`)
		assert.Contains(t, html, `id="`+f.ResultContainer+`"`)
	}
	assert.Equal(t, 4, strings.Count(html, `data-editor="sql"`))
}

func TestCodeWidgetHighlights(t *testing.T) {
	vi := NewInitializer(forms.NewController(), WithHighlighter(highlight.NewChroma("github")))
	page, err := vi.Page(context.Background(), prefsWith(t, "", false))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<pre class="sql-code"><span`)
}

func TestCodeWidgetWithoutHighlighterWarnsOnce(t *testing.T) {
	var logs bytes.Buffer
	vi := NewInitializer(forms.NewController(), WithLogger(zerolog.New(&logs)))

	for range 2 {
		page, err := vi.Page(context.Background(), prefsWith(t, "", false))
		require.NoError(t, err)
		assert.Contains(t, string(page), "WHERE status = &#39;active&#39;")
	}
	assert.Equal(t, 1, strings.Count(logs.String(), "syntax highlighter unavailable"))
}

func TestQueryFormLayout(t *testing.T) {
	tests := map[querygen.QueryType]Layout{
		querygen.TypeSelect: {ColumnLabel: "Columns:", ColumnHelp: "Comma-separated list of columns to select (leave empty for *)",
			ShowJoin: true, ShowConditions: true, ShowOrderBy: true, ShowLimit: true},
		querygen.TypeInsert: {ColumnLabel: "Columns:", ColumnHelp: "Comma-separated list of columns to insert"},
		querygen.TypeUpdate: {ColumnLabel: "SET Clause:", ColumnHelp: `SET clause (e.g., "column1 = value1, column2 = value2")`, ShowConditions: true},
		querygen.TypeDelete: {ColumnLabel: "Columns:", ColumnHelp: "Columns are not used for DELETE queries", ShowConditions: true},
	}
	for qt, want := range tests {
		got, ok := QueryFormLayout(string(qt))
		assert.True(t, ok)
		assert.Equal(t, want, got, "layout for %s", qt)
	}

	got, ok := QueryFormLayout(string(querygen.TypeCreateTable))
	assert.True(t, ok)
	assert.Equal(t, "Column Definitions:", got.ColumnLabel)

	_, ok = QueryFormLayout("merge")
	assert.False(t, ok)
}

func TestErrorExamples(t *testing.T) {
	for _, k := range ErrorExampleKinds {
		text, ok := ErrorExample(string(k))
		require.True(t, ok, "example for %s", k)
		assert.Equal(t, k, troubleshoot.Classify(text))
	}
	_, ok := ErrorExample(string(troubleshoot.TypeDiskFull))
	assert.False(t, ok)
}

// newTestRouter mounts the view over the query and error APIs, with the
// controller calling back into the same router.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	r := chi.NewRouter()
	ctrl := forms.NewController(
		forms.WithDefaultRenderers(nil),
		forms.WithHTTPClient(&http.Client{Transport: forms.HandlerTransport{Handler: r}}),
		forms.WithBaseURL(&url.URL{Scheme: "http", Host: "pgagent.local"}),
	)
	querygen.RegisterRoutes(r, nil, zerolog.Nop())
	troubleshoot.RegisterRoutes(r, troubleshoot.NewAnalyzer(nil, zerolog.Nop()), nil, zerolog.Nop())
	NewInitializer(ctrl).RegisterRoutes(r, d)
	return r
}

func postForm(r http.Handler, formID string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ui/forms/"+formID, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFormRouteRendersQuery(t *testing.T) {
	r := newTestRouter(t)
	w := postForm(r, forms.QueryFormID, url.Values{"query_type": {"select"}, "table_name": {"users"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(forms.OutcomeRendered), w.Header().Get(OutcomeHeader))
	assert.Contains(t, w.Body.String(), "Generated Query")
	assert.Contains(t, w.Body.String(), "SELECT * FROM users;")
	assert.Contains(t, w.Body.String(), "copy-btn")
}

func TestFormRouteRendersAppError(t *testing.T) {
	r := newTestRouter(t)
	w := postForm(r, forms.ErrorFormID, url.Values{"error_text": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(forms.OutcomeAppError), w.Header().Get(OutcomeHeader))
	assert.Contains(t, w.Body.String(), "alert-danger")
	assert.Contains(t, w.Body.String(), "Error text is required")
	assert.Equal(t, 1, strings.Count(w.Body.String(), `class="alert`))
}

func TestFormRouteAcceptsJSON(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/ui/forms/"+forms.ErrorFormID,
		strings.NewReader(`{"error_text":"ERROR: out of memory"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error Analysis: Out Of Memory")
}

func TestFormRouteUnknownForm(t *testing.T) {
	r := newTestRouter(t)
	w := postForm(r, "otherForm", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUIRoutes(t *testing.T) {
	r := newTestRouter(t)
	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/ui/query-form?query_type=update")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"columnLabel":"SET Clause:"`)
	assert.Equal(t, http.StatusBadRequest, get("/ui/query-form?query_type=merge").Code)

	w = get("/ui/error-examples/syntax_error")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SLECT")
	assert.Equal(t, http.StatusNotFound, get("/ui/error-examples/nope").Code)

	w = get("/static/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/ui/forms/")

	w = get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Result().Cookies())

	assert.Equal(t, http.StatusNotFound, get("/documentation/page?path=sql-select").Code)
}

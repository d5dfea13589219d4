package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/pgagent/internal/db"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestServiceRoundTrip(t *testing.T) {
	stores := map[string]func(t *testing.T) Storage{
		"memory": func(*testing.T) Storage { return NewMemoryStorage() },
		"db":     func(t *testing.T) Storage { return NewDBStorage(setupTestDB(t), "client-1") },
	}
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(mk(t))

			snap, err := svc.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Snapshot{}, snap)

			require.NoError(t, svc.SetActiveTab(ctx, "#schema"))
			require.NoError(t, svc.SetSidebarCollapsed(ctx, true))

			snap, err = svc.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Snapshot{ActiveTab: "#schema", SidebarCollapsed: true}, snap)

			require.NoError(t, svc.SetSidebarCollapsed(ctx, false))
			collapsed, err := svc.SidebarCollapsed(ctx)
			require.NoError(t, err)
			assert.False(t, collapsed)
		})
	}
}

func TestSidebarStoredAsString(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	svc := NewService(store)

	require.NoError(t, svc.SetSidebarCollapsed(ctx, true))
	v, ok, err := store.Get(ctx, KeySidebarCollapsed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	// Anything other than "true" reads as expanded.
	require.NoError(t, store.Set(ctx, KeySidebarCollapsed, "yes"))
	collapsed, err := svc.SidebarCollapsed(ctx)
	require.NoError(t, err)
	assert.False(t, collapsed)
}

func TestDBStorageIsPerClient(t *testing.T) {
	ctx := context.Background()
	d := setupTestDB(t)

	a := NewService(NewDBStorage(d, "a"))
	b := NewService(NewDBStorage(d, "b"))
	require.NoError(t, a.SetActiveTab(ctx, "#error"))

	tab, err := b.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Empty(t, tab)
}

type brokenStorage struct{}

func (brokenStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}
func (brokenStorage) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func TestLoadPropagatesStorageError(t *testing.T) {
	_, err := NewService(brokenStorage{}).Load(context.Background())
	assert.Error(t, err)
}

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, setupTestDB(t))
	return r
}

func TestRoutesGetIssuesCookie(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preferences/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientCookie, cookies[0].Name)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, Snapshot{}, snap)
}

func TestRoutesPartialUpdate(t *testing.T) {
	r := newRouter(t)
	cookie := &http.Cookie{Name: ClientCookie, Value: "5f0c6a4e-3a53-4c39-9a39-3f3b9c1c2b10"}

	put := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/preferences/", strings.NewReader(body))
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := put(`{"activeTab":"#documentation"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = put(`{"sidebarCollapsed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, Snapshot{ActiveTab: "#documentation", SidebarCollapsed: true}, snap)
	assert.Empty(t, rec.Result().Cookies(), "existing client must not get a new cookie")
}

func TestRoutesRejectsBadTab(t *testing.T) {
	r := newRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/preferences/", strings.NewReader(`{"activeTab":"query"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ActiveTab is invalid")
}

package forms

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A handler that submits through the transport while chi is still routing
// it must not share its route context with the inner request.
func TestHandlerTransportIsolatesRouteContext(t *testing.T) {
	r := chi.NewRouter()
	client := &http.Client{Transport: HandlerTransport{Handler: r}}

	var innerPattern, innerMethod string
	r.Get("/api/echo", func(w http.ResponseWriter, req *http.Request) {
		innerPattern = chi.RouteContext(req.Context()).RoutePattern()
		innerMethod = req.Method
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"ok":true}`)
	})

	var outerPattern string
	var innerStatus int
	var innerBody string
	r.Post("/ui/forms/{formID}", func(w http.ResponseWriter, req *http.Request) {
		inner, err := http.NewRequestWithContext(req.Context(), http.MethodGet, "http://pgagent.local/api/echo", nil)
		require.NoError(t, err)
		resp, err := client.Do(inner)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		innerStatus, innerBody = resp.StatusCode, string(body)

		outerPattern = chi.RouteContext(req.Context()).RoutePattern()
		assert.Equal(t, "queryForm", chi.URLParam(req, "formID"))
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ui/forms/queryForm", strings.NewReader("")))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/api/echo", innerPattern)
	assert.Equal(t, http.MethodGet, innerMethod)
	assert.Equal(t, "/ui/forms/{formID}", outerPattern)
	assert.Equal(t, http.StatusCreated, innerStatus)
	assert.Equal(t, `{"ok":true}`, innerBody)
}

func TestResponseBufferDefaults(t *testing.T) {
	b := newResponseBuffer()
	b.Header().Set("Content-Type", "application/json")
	io.WriteString(b, "{}")
	b.WriteHeader(http.StatusTeapot)

	resp := b.response(nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "200 OK", resp.Status)
	assert.Equal(t, int64(2), resp.ContentLength)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

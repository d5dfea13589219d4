package troubleshoot

import (
	"context"
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

func TestClassifyExamples(t *testing.T) {
	for typ, text := range examples {
		assert.Equal(t, typ, Classify(text), "example for %s", typ)
	}
}

func TestClassifyOrder(t *testing.T) {
	// "role ... does not exist" is an authentication failure even though
	// relation patterns also look for "does not exist".
	assert.Equal(t, TypeAuthenticationFailed, Classify(`FATAL: role "bob" does not exist`))
	assert.Equal(t, TypeRelationNotFound, Classify(`ERROR: table "t" does not exist`))
	assert.Equal(t, TypeDiskFull, Classify("could not extend file base/1/2: No space left on device"))
	assert.Equal(t, TypeUnknown, Classify("something odd happened"))
}

func TestExtractCode(t *testing.T) {
	tests := map[string]string{
		"ERROR:  42601 syntax error":                     "42601",
		"ERROR: permission denied\nSQL state: 42501":     "42501",
		"pq: SQLSTATE 23505 duplicate key":               "23505",
		"ERROR: relation does not exist SQLSTATE[42P01]": "42P01",
		"no code here": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractCode(in), "ExtractCode(%q)", in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Syntax Error", Title(TypeSyntaxError))
	assert.Equal(t, "Foreign Key Violation", Title(TypeForeignKeyViolation))
	assert.Equal(t, "Unknown", Title(TypeUnknown))
}

type fakeLookup struct {
	info string
	err  error
	got  string
}

func (f *fakeLookup) LookupErrorCode(_ context.Context, code string) (string, error) {
	f.got = code
	return f.info, f.err
}

func TestAnalyzeEmpty(t *testing.T) {
	a := NewAnalyzer(nil, zerolog.Nop())
	got := a.Analyze(context.Background(), "  ")
	assert.Equal(t, "Unknown", got.ErrorType)
	assert.Equal(t, "No error text provided for analysis.", got.Explanation)
}

func TestAnalyzeSyntaxError(t *testing.T) {
	a := NewAnalyzer(nil, zerolog.Nop())
	text, _ := Example(TypeSyntaxError)

	got := a.Analyze(context.Background(), text)
	assert.Equal(t, "Syntax Error", got.ErrorType)
	assert.True(t, strings.HasPrefix(got.Solution, "1. Check for missing"))
	assert.Contains(t, got.Explanation, "\n\nSpecific Error: ERROR: syntax error at or near \"SLECT\"\nLINE 1: SLECT * FROM customers")
	assert.Empty(t, got.ErrorCode)
}

func TestAnalyzeWithCodeLookup(t *testing.T) {
	lookup := &fakeLookup{info: "insufficient_privilege"}
	a := NewAnalyzer(lookup, zerolog.Nop())
	text, _ := Example(TypePermissionDenied)

	got := a.Analyze(context.Background(), text)
	assert.Equal(t, "Permission Denied", got.ErrorType)
	assert.Equal(t, "42501", got.ErrorCode)
	assert.Equal(t, "42501", lookup.got)
	assert.True(t, strings.HasSuffix(got.Explanation, "\n\nError Code Details: insufficient_privilege"))
}

func TestAnalyzeLookupFailureIsIgnored(t *testing.T) {
	a := NewAnalyzer(&fakeLookup{err: errors.New("offline")}, zerolog.Nop())
	got := a.Analyze(context.Background(), "ERROR: permission denied\nSQL state: 42501")
	assert.NotContains(t, got.Explanation, "Error Code Details")
	assert.Equal(t, "42501", got.ErrorCode)
}

type fakeRecorder struct{ solutions []string }

func (f *fakeRecorder) RecordError(_ context.Context, _, solution string) error {
	f.solutions = append(f.solutions, solution)
	return nil
}

func TestRoutesAnalyze(t *testing.T) {
	rec := &fakeRecorder{}
	r := chi.NewRouter()
	RegisterRoutes(r, NewAnalyzer(nil, zerolog.Nop()), rec, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/error/analyze",
		strings.NewReader(`{"error_text":"ERROR: out of memory"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"error_type":"Out Of Memory"`)
	assert.NotContains(t, w.Body.String(), `"error_code"`)
	require.Len(t, rec.solutions, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/error/analyze", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Error text is required"}`, w.Body.String())
}

func TestRoutesCommon(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewAnalyzer(nil, zerolog.Nop()), nil, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/error/common", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Duplicate Key Violation")
}

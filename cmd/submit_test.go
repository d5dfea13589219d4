package cmd

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/pgagent/internal/forms"
)

func TestLookupForm(t *testing.T) {
	f, err := lookupForm("query")
	require.NoError(t, err)
	assert.Equal(t, forms.QueryFormID, f.ID)

	f, err = lookupForm(forms.SchemaFormID)
	require.NoError(t, err)
	assert.Equal(t, "/api/schema/analyze", f.Action)

	_, err = lookupForm("nope")
	assert.ErrorContains(t, err, "docs, error, query, schema")
}

func TestParseFields(t *testing.T) {
	values, err := parseFields([]string{"table_name=users", "conditions=a = 1", "limit=5", "limit=10"})
	require.NoError(t, err)
	assert.Equal(t, "users", values.Get("table_name"))
	assert.Equal(t, "a = 1", values.Get("conditions"))
	assert.Equal(t, []string{"5", "10"}, values["limit"])

	_, err = parseFields([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseFields([]string{"=x"})
	assert.Error(t, err)
}

func TestSubmitBase(t *testing.T) {
	tests := []struct {
		flag, backend string
		want          string
	}{
		{"", "", "http://localhost:8080"},
		{"", "http://db-helper:9000", "http://db-helper:9000"},
		{"http://other:1", "http://db-helper:9000", "http://other:1"},
	}
	for _, tt := range tests {
		u, err := submitBase(tt.flag, tt.backend, 8080)
		require.NoError(t, err)
		assert.Equal(t, tt.want, u.String())
	}

	_, err := submitBase("localhost", "", 8080)
	assert.Error(t, err)

	base, _ := url.Parse("http://localhost:8080")
	assert.Equal(t, "http://localhost:8080/api/query/generate", base.ResolveReference(&url.URL{Path: "/api/query/generate"}).String())
}

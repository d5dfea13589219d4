package highlight

import (
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromaHighlightsSQL(t *testing.T) {
	h := NewChroma("github")

	out, err := h.Highlight("sql", "SELECT * FROM users WHERE name = '<b>'")
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<span")
	assert.Contains(t, s, "SELECT")
	assert.NotContains(t, s, "<b>")
	assert.NotContains(t, s, "<pre")
}

func TestChromaUnknownLanguage(t *testing.T) {
	out, err := NewChroma("no-such-style").Highlight("no-such-lang", "a < b")
	require.NoError(t, err)
	assert.Contains(t, string(out), "&lt;")
}

type failing struct{}

func (failing) Highlight(string, string) (template.HTML, error) {
	return "", errors.New("boom")
}

func TestSQLFallback(t *testing.T) {
	tests := []struct {
		name string
		h    Highlighter
	}{
		{"nil highlighter", nil},
		{"failing highlighter", failing{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SQL(tt.h, "SELECT 1 < 2")
			assert.Equal(t, template.HTML("SELECT 1 &lt; 2"), got)
		})
	}
}

func TestSQLUsesHighlighter(t *testing.T) {
	got := SQL(NewChroma("github"), "SELECT 1")
	assert.True(t, strings.Contains(string(got), "<span"))
}

package docsearch

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown renders extracted documentation content to HTML. Raw HTML in
// the source is escaped.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a renderer highlighting code blocks with the named
// chroma style.
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "github"
	}
	return &Markdown{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)}
}

// Render converts content to HTML.
func (m *Markdown) Render(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

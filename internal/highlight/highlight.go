// Package highlight renders SQL with syntax highlighting for the code
// widget and the generated-query card.
package highlight

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter turns source text into safe, highlighted inline markup.
// Implementations must escape the input.
type Highlighter interface {
	Highlight(lang, code string) (template.HTML, error)
}

// Chroma highlights with a chroma style using inline styles, so no
// stylesheet is needed on the page.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma returns a highlighter for the named chroma style. Unknown
// styles fall back to chroma's default.
func NewChroma(style string) *Chroma {
	return &Chroma{
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(lang, code string) (template.HTML, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", lang, err)
	}

	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, it); err != nil {
		return "", fmt.Errorf("formatting %s: %w", lang, err)
	}
	return template.HTML(buf.String()), nil
}

// SQL highlights code with h, falling back to escaped plain text when h
// is nil or fails.
func SQL(h Highlighter, code string) template.HTML {
	if h != nil {
		if out, err := h.Highlight("sql", code); err == nil {
			return out
		}
	}
	return template.HTML(template.HTMLEscapeString(code))
}

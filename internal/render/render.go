// Package render turns typed JSON response payloads into Bootstrap-styled
// HTML fragments. Every renderer is a pure function of its payload: all
// text is escaped by html/template and identical input yields identical
// markup.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/ziadkadry99/pgagent/internal/highlight"
)

// Func renders one payload into a fragment that replaces a result
// container's content.
type Func func(payload []byte) (template.HTML, error)

// Level is a Bootstrap alert level.
type Level string

const (
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

var tmpl = template.Must(template.New("render").Parse(templates))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Alert renders a single alert box with escaped message text.
func Alert(level Level, msg string) template.HTML {
	out, err := execute("alert", struct {
		Level   Level
		Message string
	}{level, msg})
	if err != nil {
		return template.HTML(template.HTMLEscapeString(msg))
	}
	return out
}

// TransportFailure renders the alert shown when the request itself failed
// or its body could not be parsed.
func TransportFailure(err error) template.HTML {
	return Alert(LevelDanger, "An error occurred: "+err.Error())
}

// AppError reports the payload's application error, if any. A string
// error must be non-empty; any other non-null, non-false value counts too.
func AppError(payload []byte) (string, bool) {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || len(probe.Error) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(probe.Error, &s); err == nil {
		return s, s != ""
	}
	raw := strings.TrimSpace(string(probe.Error))
	if raw == "null" || raw == "false" {
		return "", false
	}
	return raw, true
}

// EncodeCopy percent-encodes text for a copy button's data-content.
func EncodeCopy(text string) string {
	return url.PathEscape(text)
}

// Query renders the generated-query card. h may be nil.
func Query(h highlight.Highlighter) Func {
	return func(payload []byte) (template.HTML, error) {
		if msg, ok := AppError(payload); ok {
			return Alert(LevelDanger, msg), nil
		}
		var p QueryPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decoding query payload: %w", err)
		}
		if p.Query == "" {
			return Alert(LevelWarning, "No query was generated."), nil
		}
		return execute("query", struct {
			Encoded string
			Code    template.HTML
		}{EncodeCopy(p.Query), highlight.SQL(h, p.Query)})
	}
}

// ErrorAnalysis renders the error-analysis card.
func ErrorAnalysis(payload []byte) (template.HTML, error) {
	if msg, ok := AppError(payload); ok {
		return Alert(LevelDanger, msg), nil
	}
	var p ErrorAnalysisPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return "", fmt.Errorf("decoding error analysis payload: %w", err)
	}

	view := struct {
		Type        string
		Explanation string
		Solution    template.HTML
		Code        string
	}{
		Type:        p.ErrorType,
		Explanation: p.Explanation,
		Solution:    FormatSolutionSteps(p.Solution),
		Code:        p.ErrorCode,
	}
	if view.Type == "" {
		view.Type = "Unknown Error"
	}
	if view.Explanation == "" {
		view.Explanation = "No explanation available."
	}
	return execute("error_analysis", view)
}

var stepMarker = regexp.MustCompile(`^\d+\.\s`)

// FormatSolutionSteps renders solution text as an ordered list when it
// starts with a "N. " marker and as one paragraph per line otherwise.
// Blank lines are dropped and empty text gives a placeholder.
func FormatSolutionSteps(text string) template.HTML {
	view := struct {
		Empty   bool
		Ordered bool
		Items   []string
	}{}

	if strings.TrimSpace(text) == "" {
		view.Empty = true
	} else {
		view.Ordered = stepMarker.MatchString(text)
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if view.Ordered {
				line = stepMarker.ReplaceAllString(line, "")
			}
			view.Items = append(view.Items, line)
		}
	}

	out, err := execute("solution", view)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return out
}

type columnRow struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	PK       bool
}

type fkRow struct {
	Name       string
	Columns    string
	Table      string
	RefColumns string
}

type indexRow struct {
	Name    string
	Unique  bool
	Columns string
}

// Schema renders the schema-analysis card. h may be nil.
func Schema(h highlight.Highlighter) Func {
	return func(payload []byte) (template.HTML, error) {
		if msg, ok := AppError(payload); ok {
			return Alert(LevelDanger, msg), nil
		}
		var p SchemaPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decoding schema payload: %w", err)
		}

		pk := make(map[string]bool, len(p.PrimaryKey))
		for _, c := range p.PrimaryKey {
			pk[c] = true
		}

		view := struct {
			TableName     string
			Columns       []columnRow
			ForeignKeys   []fkRow
			Indexes       []indexRow
			CreateSQL     string
			CreateEncoded string
			CreateCode    template.HTML
			Sample        string
		}{TableName: p.TableName}

		for _, c := range p.Columns {
			view.Columns = append(view.Columns, columnRow{
				Name:     c.Name,
				Type:     c.Type,
				Nullable: c.Nullable,
				Default:  columnDefault(c.Default),
				PK:       c.IsPrimary || pk[c.Name],
			})
		}
		for _, fk := range p.ForeignKeys {
			view.ForeignKeys = append(view.ForeignKeys, fkRow{
				Name:       fk.Name,
				Columns:    strings.Join(fk.Columns, ", "),
				Table:      fk.ReferredTable,
				RefColumns: strings.Join(fk.ReferredColumns, ", "),
			})
		}
		for _, idx := range p.Indexes {
			view.Indexes = append(view.Indexes, indexRow{
				Name:    idx.Name,
				Unique:  idx.Unique,
				Columns: strings.Join(idx.Columns, ", "),
			})
		}
		if p.CreateTableSQL != "" {
			view.CreateSQL = p.CreateTableSQL
			view.CreateEncoded = EncodeCopy(p.CreateTableSQL)
			view.CreateCode = highlight.SQL(h, p.CreateTableSQL)
		}
		view.Sample = sampleText(p.SampleDataStructure)

		return execute("schema", view)
	}
}

// columnDefault normalizes a column default. Null, empty and the literal
// "None" all mean there is no default.
func columnDefault(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "None" {
			return ""
		}
		return s
	}
	v := strings.TrimSpace(string(raw))
	if v == "null" {
		return ""
	}
	return v
}

// sampleText accepts the sample structure either as a pre-formatted JSON
// string or as a JSON value, which is indented.
func sampleText(raw json.RawMessage) string {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// DocSearch renders documentation search results.
func DocSearch(payload []byte) (template.HTML, error) {
	if msg, ok := AppError(payload); ok {
		return Alert(LevelDanger, msg), nil
	}
	var p DocSearchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return "", fmt.Errorf("decoding documentation payload: %w", err)
	}
	if len(p.Results) == 0 {
		return Alert(LevelInfo, "No documentation results found."), nil
	}
	return execute("doc_search", p.Results)
}

// Generic pretty-prints any JSON payload. It is the fallback for forms
// without a dedicated renderer.
func Generic(payload []byte) (template.HTML, error) {
	if msg, ok := AppError(payload); ok {
		return Alert(LevelDanger, msg), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return "", fmt.Errorf("formatting payload: %w", err)
	}
	return execute("generic", buf.String())
}

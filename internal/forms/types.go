package forms

import (
	"html/template"
	"net/url"
	"strings"
	"sync"
)

// Kind identifies which renderer handles a form's responses.
type Kind int

const (
	KindGeneric Kind = iota
	KindQuery
	KindErrorAnalysis
	KindSchema
	KindDocSearch
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindErrorAnalysis:
		return "error_analysis"
	case KindSchema:
		return "schema"
	case KindDocSearch:
		return "doc_search"
	default:
		return "generic"
	}
}

// Page form ids. These are part of the page's DOM contract.
const (
	QueryFormID     = "queryForm"
	ErrorFormID     = "errorForm"
	SchemaFormID    = "schemaForm"
	DocSearchFormID = "docSearchForm"
)

var formKinds = map[string]Kind{
	QueryFormID:     KindQuery,
	ErrorFormID:     KindErrorAnalysis,
	SchemaFormID:    KindSchema,
	DocSearchFormID: KindDocSearch,
}

// KindOf maps a form id to its kind. Unknown ids are generic.
func KindOf(formID string) Kind {
	if k, ok := formKinds[formID]; ok {
		return k
	}
	return KindGeneric
}

// Form describes one page form.
type Form struct {
	ID              string
	Action          string
	Method          string
	Async           bool
	ResultContainer string
	SubmitLabel     string
}

// Kind returns the renderer kind for the form.
func (f Form) Kind() Kind {
	return KindOf(f.ID)
}

// HTTPMethod returns the form's method, defaulting to POST.
func (f Form) HTTPMethod() string {
	if f.Method == "" {
		return "POST"
	}
	return strings.ToUpper(f.Method)
}

// Submission is one outbound request built from a submitted form.
type Submission struct {
	Endpoint string
	Method   string
	Fields   map[string]string
	Kind     Kind
}

// NewSubmission flattens the submitted values. For repeated fields the
// last value wins.
func NewSubmission(f Form, values url.Values) Submission {
	fields := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			fields[k] = vs[len(vs)-1]
		}
	}
	return Submission{
		Endpoint: f.Action,
		Method:   f.HTTPMethod(),
		Fields:   fields,
		Kind:     f.Kind(),
	}
}

// Container is a result area whose content is replaced wholesale.
type Container interface {
	Replace(template.HTML)
}

// Button is the submit control that shows a busy state while a request
// is in flight.
type Button interface {
	SetBusy()
	Restore()
}

// BusyLabel is shown on a submit button while its request is in flight.
const BusyLabel = "Processing..."

// SubmitButton is the standard Button. Its original label is captured
// once, when the button is created at page load.
type SubmitButton struct {
	mu       sync.Mutex
	original string
	label    string
	disabled bool
}

// NewSubmitButton returns an enabled button showing label.
func NewSubmitButton(label string) *SubmitButton {
	return &SubmitButton{original: label, label: label}
}

// SetBusy implements Button.
func (b *SubmitButton) SetBusy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = true
	b.label = BusyLabel
}

// Restore implements Button.
func (b *SubmitButton) Restore() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = false
	b.label = b.original
}

// Label returns the current label.
func (b *SubmitButton) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// Disabled reports whether the button is in its busy state.
func (b *SubmitButton) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// Buffer is a Container that keeps the latest fragment.
type Buffer struct {
	mu     sync.Mutex
	html   template.HTML
	writes int
}

// Replace implements Container.
func (b *Buffer) Replace(h template.HTML) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.html = h
	b.writes++
}

// HTML returns the current content.
func (b *Buffer) HTML() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.html
}

// Writes counts Replace calls.
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Package view renders the pgagent page and serves the routes the page
// script calls: server-side form submission, query-form layouts, error
// examples and documentation pages.
package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/docsearch"
	"github.com/ziadkadry99/pgagent/internal/forms"
	"github.com/ziadkadry99/pgagent/internal/highlight"
	"github.com/ziadkadry99/pgagent/internal/prefs"
	"github.com/ziadkadry99/pgagent/internal/querygen"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
)

// Initializer builds the page and owns the server-side form controller.
type Initializer struct {
	highlighter highlight.Highlighter
	controller  *forms.Controller
	docs        *docsearch.Service
	markdown    *docsearch.Markdown
	log         zerolog.Logger

	warnOnce sync.Once
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithHighlighter enables the highlighted code widget.
func WithHighlighter(h highlight.Highlighter) Option {
	return func(i *Initializer) { i.highlighter = h }
}

// WithDocs enables the documentation page route.
func WithDocs(svc *docsearch.Service, md *docsearch.Markdown) Option {
	return func(i *Initializer) {
		i.docs = svc
		i.markdown = md
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(i *Initializer) { i.log = l }
}

// NewInitializer returns an initializer that submits forms through c.
func NewInitializer(c *forms.Controller, opts ...Option) *Initializer {
	i := &Initializer{controller: c, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type codeBlock struct {
	Title       string
	Explanation string
	Code        template.HTML
}

type formView struct {
	forms.Form
	Method string
}

type pageData struct {
	Tabs             []Tab
	Active           string
	SidebarCollapsed bool
	Forms            map[string]formView
	QueryTypes       []querygen.QueryType
	Layout           Layout
	Examples         []codeBlock
	Joins            []querygen.JoinExample
	CommonErrors     []troubleshoot.CommonError
	ErrorKinds       []errorKind
	Highlighted      bool
}

type errorKind struct {
	Kind  string
	Title string
}

// sql renders a read-only code widget, logging once when no highlighter
// is configured.
func (i *Initializer) sql(code string) template.HTML {
	if i.highlighter == nil {
		i.warnOnce.Do(func() {
			i.log.Warn().Msg("syntax highlighter unavailable, rendering plain code")
		})
	}
	return highlight.SQL(i.highlighter, code)
}

// Page renders the index page. Preferences are read once: the stored tab
// is restored only when it names an existing tab, and a collapsed sidebar
// adds the sidebar-collapsed body class.
func (i *Initializer) Page(ctx context.Context, p *prefs.Service) ([]byte, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		i.log.Warn().Err(err).Msg("loading preferences")
		snap = prefs.Snapshot{}
	}

	data := pageData{
		Tabs:             Tabs,
		Active:           resolveTab(snap.ActiveTab).ID,
		SidebarCollapsed: snap.SidebarCollapsed,
		Forms:            make(map[string]formView, len(PageForms)),
		QueryTypes:       querygen.TemplateOrder,
		Joins:            querygen.JoinExamples(),
		CommonErrors:     troubleshoot.CommonErrors(),
		Highlighted:      i.highlighter != nil,
	}
	data.Layout, _ = QueryFormLayout(string(querygen.TypeSelect))

	for id, f := range PageForms {
		data.Forms[id] = formView{Form: f, Method: f.HTTPMethod()}
	}

	templates := querygen.Templates()
	for _, qt := range querygen.TemplateOrder {
		t := templates[qt]
		data.Examples = append(data.Examples, codeBlock{
			Title:       t.Title,
			Explanation: t.Explanation,
			Code:        i.sql(t.Example),
		})
	}
	for _, k := range ErrorExampleKinds {
		data.ErrorKinds = append(data.ErrorKinds, errorKind{Kind: string(k), Title: troubleshoot.Title(k)})
	}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

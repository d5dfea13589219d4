// Package docsearch searches and extracts the PostgreSQL documentation
// published on postgresql.org.
package docsearch

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/pgagent/internal/config"
)

// MaxResults caps the number of search hits returned.
const MaxResults = 10

// ErrInvalidPath rejects documentation paths that leave the docs site.
var ErrInvalidPath = errors.New("invalid documentation path")

// Service answers documentation queries.
type Service struct {
	cfg   config.DocsConfig
	fetch *Fetcher
	log   zerolog.Logger
}

// NewService returns a service fetching through f.
func NewService(cfg config.DocsConfig, f *Fetcher, log zerolog.Logger) *Service {
	return &Service{cfg: cfg, fetch: f, log: log}
}

func (s *Service) parse(ctx context.Context, pageURL string) (*html.Node, error) {
	body, err := s.fetch.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return html.Parse(strings.NewReader(body))
}

// Search returns up to MaxResults documentation hits for term. Failures
// are logged and yield no results.
func (s *Service) Search(ctx context.Context, term string) []Result {
	base, err := url.Parse(s.cfg.SearchURL)
	if err != nil {
		s.log.Error().Err(err).Msg("invalid search URL")
		return []Result{}
	}
	q := base.Query()
	q.Set("q", term)
	base.RawQuery = q.Encode()

	doc, err := s.parse(ctx, base.String())
	if err != nil {
		s.log.Error().Err(err).Str("term", term).Msg("searching documentation")
		return []Result{}
	}

	var items []*html.Node
	for _, list := range findAll(doc, func(n *html.Node) bool { return hasClass(n, "search-results") }) {
		items = append(items, findAll(list, byTag("li"))...)
	}
	if len(items) > MaxResults {
		items = items[:MaxResults]
	}

	results := []Result{}
	for _, li := range items {
		a := findFirst(li, byTag("a"))
		if a == nil {
			continue
		}
		href := attr(a, "href")
		if !strings.Contains(href, "/docs/") {
			continue
		}
		if ref, err := url.Parse(href); err == nil {
			href = base.ResolveReference(ref).String()
		}
		r := Result{Title: text(a), URL: href}
		if p := findFirst(li, byTag("p")); p != nil {
			r.Snippet = text(p)
		}
		results = append(results, r)
	}
	return results
}

// Sections returns the documentation table of contents, or the built-in
// section list when the index cannot be read.
func (s *Service) Sections(ctx context.Context) []Section {
	indexURL := s.cfg.BaseURL + "index.html"
	doc, err := s.parse(ctx, indexURL)
	if err != nil {
		s.log.Warn().Err(err).Msg("reading documentation index")
		return s.builtin()
	}
	toc := findFirst(doc, byTagClass("div", "toc"))
	if toc == nil {
		return s.builtin()
	}

	base, _ := url.Parse(indexURL)
	var sections []Section
	for _, n := range findAll(toc, func(n *html.Node) bool { return isElement(n, "dt") || isElement(n, "dd") }) {
		if n.Data == "dt" {
			sections = append(sections, Section{Title: text(n), Links: []Link{}})
			continue
		}
		if len(sections) == 0 {
			continue
		}
		a := findFirst(n, byTag("a"))
		if a == nil {
			continue
		}
		cur := &sections[len(sections)-1]
		cur.Links = append(cur.Links, Link{Title: text(a), URL: resolve(base, attr(a, "href"))})
	}
	if len(sections) == 0 {
		return s.builtin()
	}
	return sections
}

func (s *Service) builtin() []Section {
	out := make([]Section, 0, len(builtinSections))
	for _, b := range builtinSections {
		sec := Section{Title: b.title}
		for _, slug := range b.slugs {
			sec.Links = append(sec.Links, Link{Title: slug, URL: s.cfg.BaseURL + slug + ".html"})
		}
		out = append(out, sec)
	}
	return out
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Page fetches one documentation page by its path relative to the docs
// base URL, for example "sql-select" or "sql-select.html".
func (s *Service) Page(ctx context.Context, path string) (*Page, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	if path == "" || strings.Contains(path, "://") || strings.Contains(path, "..") {
		return nil, ErrInvalidPath
	}
	if !strings.HasSuffix(path, ".html") {
		path += ".html"
	}
	pageURL := s.cfg.BaseURL + path

	doc, err := s.parse(ctx, pageURL)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("loading documentation page")
		return &Page{Title: "Not Found", Content: "Documentation page could not be loaded."}, nil
	}

	page := &Page{Title: "PostgreSQL Documentation"}
	if t := findFirst(doc, byTag("title")); t != nil {
		page.Title = text(t)
	}

	content := findFirst(doc, byTagClass("div", "sect1"))
	if content == nil {
		content = findFirst(doc, byTagClass("div", "chapter"))
	}
	if content == nil {
		content = findFirst(doc, byTag("body"))
	}
	if content != nil {
		page.Content = ToMarkdown(content)
	} else {
		page.Content = "Content not available"
	}

	page.Examples = codeExamples(doc)
	base, _ := url.Parse(pageURL)
	page.Related = relatedLinks(doc, base)
	return page, nil
}

var sqlKeywords = []string{"select", "insert", "update", "delete", "create", "alter"}

func codeExamples(doc *html.Node) []string {
	var out []string
	for _, pre := range findAll(doc, byTag("pre")) {
		t := rawText(pre)
		lower := strings.ToLower(t)
		for _, kw := range sqlKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func relatedLinks(doc *html.Node, base *url.URL) []Link {
	var out []Link
	seen := make(map[string]bool)
	for _, a := range findAll(doc, byTag("a")) {
		href := attr(a, "href")
		if !strings.HasSuffix(href, ".html") && !strings.Contains(href, "/") {
			continue
		}
		if strings.HasPrefix(href, "http:") || strings.HasPrefix(href, "https:") || strings.HasPrefix(href, "mailto:") {
			continue
		}
		full := resolve(base, href)
		if seen[full] {
			continue
		}
		seen[full] = true
		out = append(out, Link{Title: text(a), URL: full})
	}
	return out
}

// LookupErrorCode finds code in the error-codes appendix and returns its
// condition name. An unknown code returns "" and no error.
func (s *Service) LookupErrorCode(ctx context.Context, code string) (string, error) {
	doc, err := s.parse(ctx, s.cfg.ErrorCodesURL)
	if err != nil {
		return "", err
	}
	for _, table := range findAll(doc, byTagClass("table", "table")) {
		for _, tr := range findAll(table, byTag("tr")) {
			cells := findAll(tr, byTag("td"))
			if len(cells) >= 2 && strings.Contains(text(cells[0]), code) {
				return text(cells[1]), nil
			}
		}
	}
	return "", nil
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// ToMarkdown converts a documentation fragment into Markdown: headings,
// paragraphs, code blocks, list items and links.
func ToMarkdown(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(strings.Join(strings.Fields(t), " "))
				b.WriteString("\n\n")
			}
			return
		case n.Type != html.ElementNode && n.Type != html.DocumentNode:
			return
		}

		switch n.Data {
		case "script", "style", "head":
			return
		case "h1", "h2", "h3", "h4":
			level := int(n.Data[1] - '0')
			b.WriteString("\n\n" + strings.Repeat("#", level) + " " + text(n) + "\n\n")
			return
		case "p":
			b.WriteString(inline(n) + "\n\n")
			return
		case "pre":
			b.WriteString("\n```sql\n" + strings.Trim(rawText(n), "\n") + "\n```\n\n")
			return
		case "li":
			b.WriteString("- " + inline(n) + "\n")
			return
		case "a":
			if attr(n, "href") != "" {
				b.WriteString(inline(n) + "\n\n")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(blankRuns.ReplaceAllString(b.String(), "\n\n"))
}

// inline renders the text of n on one line, keeping links and code
// spans.
func inline(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if href := attr(n, "href"); href != "" {
					b.WriteString("[" + text(n) + "](" + href + ")")
					return
				}
			case "code":
				if t := text(n); t != "" {
					b.WriteString("`" + t + "`")
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

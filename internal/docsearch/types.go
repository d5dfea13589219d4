package docsearch

// Result is one documentation search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Link is a titled documentation URL.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Section is one group of the documentation table of contents.
type Section struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

// Page is the extracted content of one documentation page. Content is
// Markdown.
type Page struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Examples []string `json:"examples,omitempty"`
	Related  []Link   `json:"related,omitempty"`
}

// SearchRequest is the documentation form's body.
type SearchRequest struct {
	SearchTerm string `json:"search_term" validate:"required"`
}

// builtinSections is served when the live table of contents cannot be
// read.
var builtinSections = []struct {
	title string
	slugs []string
}{
	{"basics", []string{"sql-syntax", "ddl", "dml"}},
	{"advanced", []string{"queries", "performance", "functions"}},
	{"administration", []string{"admin", "backup", "monitoring"}},
	{"data_types", []string{"datatype"}},
	{"extensions", []string{"contrib"}},
}

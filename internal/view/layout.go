package view

import (
	"github.com/ziadkadry99/pgagent/internal/forms"
	"github.com/ziadkadry99/pgagent/internal/querygen"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
)

// Tab is one top-level page tab. ID is the fragment without the hash.
type Tab struct {
	ID    string
	Title string
	Icon  string
}

// Tabs lists the page tabs in display order. The first is the default.
var Tabs = []Tab{
	{ID: "query", Title: "Query Generator", Icon: "fa-code"},
	{ID: "error", Title: "Error Analyzer", Icon: "fa-bug"},
	{ID: "schema", Title: "Schema Analyzer", Icon: "fa-table"},
	{ID: "docs", Title: "Documentation", Icon: "fa-book"},
}

// resolveTab returns the tab named by fragment (for example "#error"),
// or the default tab when it names none.
func resolveTab(fragment string) Tab {
	for _, t := range Tabs {
		if "#"+t.ID == fragment {
			return t
		}
	}
	return Tabs[0]
}

// PageForms are the async forms on the page, keyed by DOM id.
var PageForms = map[string]forms.Form{
	forms.QueryFormID: {
		ID: forms.QueryFormID, Action: "/api/query/generate", Async: true,
		ResultContainer: "queryResult", SubmitLabel: "Generate Query",
	},
	forms.ErrorFormID: {
		ID: forms.ErrorFormID, Action: "/api/error/analyze", Async: true,
		ResultContainer: "errorResult", SubmitLabel: "Analyze Error",
	},
	forms.SchemaFormID: {
		ID: forms.SchemaFormID, Action: "/api/schema/analyze", Async: true,
		ResultContainer: "schemaResult", SubmitLabel: "Analyze Schema",
	},
	forms.DocSearchFormID: {
		ID: forms.DocSearchFormID, Action: "/api/documentation/search", Async: true,
		ResultContainer: "docSearchResult", SubmitLabel: "Search",
	},
}

// Layout is the query form's field configuration for one statement kind.
type Layout struct {
	ColumnLabel    string `json:"columnLabel"`
	ColumnHelp     string `json:"columnHelp"`
	ShowJoin       bool   `json:"showJoin"`
	ShowConditions bool   `json:"showConditions"`
	ShowOrderBy    bool   `json:"showOrderBy"`
	ShowLimit      bool   `json:"showLimit"`
}

var layouts = map[querygen.QueryType]Layout{
	querygen.TypeSelect: {
		ColumnLabel:    "Columns:",
		ColumnHelp:     "Comma-separated list of columns to select (leave empty for *)",
		ShowJoin:       true,
		ShowConditions: true,
		ShowOrderBy:    true,
		ShowLimit:      true,
	},
	querygen.TypeInsert: {
		ColumnLabel: "Columns:",
		ColumnHelp:  "Comma-separated list of columns to insert",
	},
	querygen.TypeUpdate: {
		ColumnLabel:    "SET Clause:",
		ColumnHelp:     `SET clause (e.g., "column1 = value1, column2 = value2")`,
		ShowConditions: true,
	},
	querygen.TypeDelete: {
		ColumnLabel:    "Columns:",
		ColumnHelp:     "Columns are not used for DELETE queries",
		ShowConditions: true,
	},
	querygen.TypeCreateTable: {
		ColumnLabel: "Column Definitions:",
		ColumnHelp:  `Column definitions (e.g., "name VARCHAR(100), age INTEGER, created_at TIMESTAMP")`,
	},
}

// QueryFormLayout returns the field layout for queryType. Unknown types
// get the select layout.
func QueryFormLayout(queryType string) (Layout, bool) {
	l, ok := layouts[querygen.QueryType(queryType)]
	if !ok {
		return layouts[querygen.TypeSelect], false
	}
	return l, true
}

// ErrorExampleKinds lists the canned error examples in display order.
var ErrorExampleKinds = []troubleshoot.ErrorType{
	troubleshoot.TypeConnectionRefused,
	troubleshoot.TypeAuthenticationFailed,
	troubleshoot.TypePermissionDenied,
	troubleshoot.TypeRelationNotFound,
	troubleshoot.TypeSyntaxError,
	troubleshoot.TypeDuplicateKey,
	troubleshoot.TypeForeignKeyViolation,
	troubleshoot.TypeOutOfMemory,
}

// ErrorExample returns the example message that fills the error form.
func ErrorExample(kind string) (string, bool) {
	return troubleshoot.Example(troubleshoot.ErrorType(kind))
}

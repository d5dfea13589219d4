package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/pgagent/internal/docsearch"
	"github.com/ziadkadry99/pgagent/internal/querygen"
	"github.com/ziadkadry99/pgagent/internal/schema"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
)

// handleGenerateQuery builds a statement from the query form's fields.
func (s *Server) handleGenerateQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := request.RequireString("table_name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: table_name"), nil
	}

	req := querygen.Request{
		QueryType:     querygen.QueryType(request.GetString("query_type", string(querygen.TypeSelect))),
		TableName:     table,
		Columns:       request.GetString("columns", ""),
		Conditions:    request.GetString("conditions", ""),
		JoinTable:     request.GetString("join_table", ""),
		JoinCondition: request.GetString("join_condition", ""),
		OrderBy:       request.GetString("order_by", ""),
		GroupBy:       request.GetString("group_by", ""),
		Limit:         request.GetString("limit", ""),
	}

	query, err := querygen.Generate(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(query), nil
}

// handleAnalyzeError classifies an error message.
func (s *Server) handleAnalyzeError(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("error_text")
	if err != nil || strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("missing required parameter: error_text"), nil
	}

	return mcp.NewToolResultText(formatAnalysis(s.svc.Errors.Analyze(ctx, text))), nil
}

// handleAnalyzeSchema describes one table.
func (s *Server) handleAnalyzeSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conn, err := request.RequireString("connection_string")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: connection_string"), nil
	}
	table, err := request.RequireString("table_name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: table_name"), nil
	}

	a, err := s.svc.Schema.Analyze(ctx, conn, table)
	if err != nil {
		if errors.Is(err, schema.ErrTableNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("schema analysis failed: %v", err)), nil
	}
	return mcp.NewToolResultText(formatSchema(a)), nil
}

// handleListTables lists the user tables of a database.
func (s *Server) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conn, err := request.RequireString("connection_string")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: connection_string"), nil
	}

	tables, err := s.svc.Schema.Tables(ctx, conn)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing tables failed: %v", err)), nil
	}
	if len(tables) == 0 {
		return mcp.NewToolResultText("No tables found."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d table(s):\n", len(tables))
	for _, t := range tables {
		fmt.Fprintf(&sb, "- %s (%d columns", t.FullName, t.ColumnCount)
		if len(t.PrimaryKey) > 0 {
			fmt.Fprintf(&sb, ", primary key %s", strings.Join(t.PrimaryKey, ", "))
		}
		sb.WriteString(")\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchDocumentation searches postgresql.org.
func (s *Server) handleSearchDocumentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := request.RequireString("search_term")
	if err != nil || strings.TrimSpace(term) == "" {
		return mcp.NewToolResultError("missing required parameter: search_term"), nil
	}

	results := s.svc.Docs.Search(ctx, term)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No documentation found for %q.", term)), nil
	}
	return mcp.NewToolResultText(formatResults(results)), nil
}

func formatAnalysis(a troubleshoot.Analysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error Type: %s\n", a.ErrorType)
	if a.ErrorCode != "" {
		fmt.Fprintf(&sb, "Error Code: %s\n", a.ErrorCode)
	}
	fmt.Fprintf(&sb, "\nExplanation:\n%s\n", a.Explanation)
	fmt.Fprintf(&sb, "\nSolution:\n%s\n", a.Solution)
	return sb.String()
}

// formatSchema renders an analysis for AI agent consumption.
func formatSchema(a *schema.Analysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Table: %s\n\nColumns:\n", a.TableName)
	for _, c := range a.Columns {
		null := "NOT NULL"
		if c.Nullable {
			null = "NULL"
		}
		fmt.Fprintf(&sb, "- %s %s %s default=%s", c.Name, c.Type, null, c.Default)
		if c.IsPrimary {
			sb.WriteString(" [primary key]")
		}
		sb.WriteString("\n")
	}

	if len(a.ForeignKeys) > 0 {
		sb.WriteString("\nForeign keys:\n")
		for _, fk := range a.ForeignKeys {
			fmt.Fprintf(&sb, "- %s: (%s) -> %s(%s)\n", fk.Name,
				strings.Join(fk.Columns, ", "), fk.ReferredTable, strings.Join(fk.ReferredColumns, ", "))
		}
	}

	if len(a.Indexes) > 0 {
		sb.WriteString("\nIndexes:\n")
		for _, idx := range a.Indexes {
			unique := ""
			if idx.Unique {
				unique = " unique"
			}
			fmt.Fprintf(&sb, "- %s (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
	}

	fmt.Fprintf(&sb, "\nCREATE TABLE statement:\n%s\n", a.CreateTableSQL)
	fmt.Fprintf(&sb, "\nSample data structure:\n%s\n", a.SampleDataStructure)
	return sb.String()
}

func formatResults(results []docsearch.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %s\n%s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			sb.WriteString(r.Snippet)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

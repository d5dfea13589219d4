package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generateQueryTool defines the generate_query MCP tool.
var generateQueryTool = mcp.NewTool("generate_query",
	mcp.WithDescription("Generate a PostgreSQL statement from a table name and free-text clauses."),
	mcp.WithString("table_name",
		mcp.Required(),
		mcp.Description("Target table"),
	),
	mcp.WithString("query_type",
		mcp.Description("Statement kind (default select)"),
		mcp.Enum("select", "insert", "update", "delete", "create_table"),
	),
	mcp.WithString("columns",
		mcp.Description("Column list, SET clause or column definitions depending on query_type"),
	),
	mcp.WithString("conditions",
		mcp.Description("WHERE clause without the keyword"),
	),
	mcp.WithString("join_table",
		mcp.Description("Table to INNER JOIN (select only)"),
	),
	mcp.WithString("join_condition",
		mcp.Description("ON condition for join_table"),
	),
	mcp.WithString("order_by",
		mcp.Description("ORDER BY clause without the keyword"),
	),
	mcp.WithString("group_by",
		mcp.Description("GROUP BY clause without the keyword"),
	),
	mcp.WithString("limit",
		mcp.Description("Row limit"),
	),
)

// analyzeErrorTool defines the analyze_error MCP tool.
var analyzeErrorTool = mcp.NewTool("analyze_error",
	mcp.WithDescription("Classify a PostgreSQL error message and suggest a fix."),
	mcp.WithString("error_text",
		mcp.Required(),
		mcp.Description("The full error message as reported by PostgreSQL"),
	),
)

// analyzeSchemaTool defines the analyze_schema MCP tool.
var analyzeSchemaTool = mcp.NewTool("analyze_schema",
	mcp.WithDescription("Describe a table: columns, keys, indexes, constraints, its CREATE TABLE statement and a sample row."),
	mcp.WithString("connection_string",
		mcp.Required(),
		mcp.Description("postgresql:// URL; missing parts fall back to the configured defaults"),
	),
	mcp.WithString("table_name",
		mcp.Required(),
		mcp.Description("Table name, optionally schema-qualified"),
	),
)

// listTablesTool defines the list_tables MCP tool.
var listTablesTool = mcp.NewTool("list_tables",
	mcp.WithDescription("List the user tables of a database."),
	mcp.WithString("connection_string",
		mcp.Required(),
		mcp.Description("postgresql:// URL; missing parts fall back to the configured defaults"),
	),
)

// searchDocumentationTool defines the search_documentation MCP tool.
var searchDocumentationTool = mcp.NewTool("search_documentation",
	mcp.WithDescription("Search the official PostgreSQL documentation."),
	mcp.WithString("search_term",
		mcp.Required(),
		mcp.Description("Search term"),
	),
)

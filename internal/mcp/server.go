package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/pgagent/internal/docsearch"
	"github.com/ziadkadry99/pgagent/internal/schema"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrorAnalyzer explains PostgreSQL error messages.
type ErrorAnalyzer interface {
	Analyze(ctx context.Context, text string) troubleshoot.Analysis
}

// SchemaAnalyzer inspects tables of a live database.
type SchemaAnalyzer interface {
	Analyze(ctx context.Context, conn, table string) (*schema.Analysis, error)
	Tables(ctx context.Context, conn string) ([]schema.TableInfo, error)
}

// DocSearcher searches the PostgreSQL documentation.
type DocSearcher interface {
	Search(ctx context.Context, term string) []docsearch.Result
}

// Services are the backends behind the tools. A nil service leaves its
// tools unregistered.
type Services struct {
	Errors ErrorAnalyzer
	Schema SchemaAnalyzer
	Docs   DocSearcher
}

// Server wraps an MCP server that exposes the pgagent operations as tools.
type Server struct {
	svc Services
	mcp *server.MCPServer
}

// NewServer creates a new MCP server over svc.
func NewServer(svc Services) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"pgagent",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateQueryTool, s.handleGenerateQuery)
	if s.svc.Errors != nil {
		s.mcp.AddTool(analyzeErrorTool, s.handleAnalyzeError)
	}
	if s.svc.Schema != nil {
		s.mcp.AddTool(analyzeSchemaTool, s.handleAnalyzeSchema)
		s.mcp.AddTool(listTablesTool, s.handleListTables)
	}
	if s.svc.Docs != nil {
		s.mcp.AddTool(searchDocumentationTool, s.handleSearchDocumentation)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

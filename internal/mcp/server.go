package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/opensearch-mcp/internal/backend"
)

const (
	// ServerName is the MCP server name
	ServerName = "opensearch-mcp-server"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the backend connection handle. The
// backend is shared read-only by all tool handlers.
type Server struct {
	mcp     *server.MCPServer
	backend backend.Client
	logger  *slog.Logger
}

// NewServer creates a new MCP server around an existing backend connection.
func NewServer(be backend.Client, logger *slog.Logger) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		mcp:     mcpServer,
		backend: be,
		logger:  logger,
	}

	s.registerTools()
	return s
}

// MCP exposes the underlying protocol server for transport adapters.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Cluster tools
	s.mcp.AddTool(clusterHealthTool(), s.handleClusterHealth)
	s.mcp.AddTool(clusterStatsTool(), s.handleClusterStats)

	// Index tools
	s.mcp.AddTool(listIndicesTool(), s.handleListIndices)
	s.mcp.AddTool(getMappingTool(), s.handleGetMapping)
	s.mcp.AddTool(getSettingsTool(), s.handleGetSettings)

	// Document tools
	s.mcp.AddTool(searchDocumentsTool(), s.handleSearchDocuments)
}

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Every handler forwards to exactly one backend operation. A backend
// failure becomes an error content item carrying the failure message; it is
// never returned as a Go error, so nothing escapes past the tool boundary.

// handleClusterHealth handles the get_cluster_health tool invocation
func (s *Server) handleClusterHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("getting cluster health")

	response, err := s.backend.ClusterHealth(ctx)
	if err != nil {
		s.logger.Error("error getting cluster health", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error getting cluster health: %s", err)), nil
	}
	return mcp.NewToolResultText(response), nil
}

// handleClusterStats handles the get_cluster_stats tool invocation
func (s *Server) handleClusterStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("getting cluster stats")

	response, err := s.backend.ClusterStats(ctx)
	if err != nil {
		s.logger.Error("error getting cluster stats", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error getting cluster stats: %s", err)), nil
	}
	return mcp.NewToolResultText(response), nil
}

// handleListIndices handles the list_indices tool invocation
func (s *Server) handleListIndices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("listing indices")

	response, err := s.backend.ListIndices(ctx)
	if err != nil {
		s.logger.Error("error listing indices", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err)), nil
	}
	return mcp.NewToolResultText(response), nil
}

// handleGetMapping handles the get_mapping tool invocation
func (s *Server) handleGetMapping(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := requireIndex(request)
	if errResult != nil {
		return errResult, nil
	}
	s.logger.Info("getting mapping", "index", index)

	response, err := s.backend.GetMapping(ctx, index)
	if err != nil {
		s.logger.Error("error getting mapping", "index", index, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err)), nil
	}
	return mcp.NewToolResultText(response), nil
}

// handleGetSettings handles the get_settings tool invocation
func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := requireIndex(request)
	if errResult != nil {
		return errResult, nil
	}
	s.logger.Info("getting settings", "index", index)

	response, err := s.backend.GetSettings(ctx, index)
	if err != nil {
		s.logger.Error("error getting settings", "index", index, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err)), nil
	}
	return mcp.NewToolResultText(response), nil
}

// handleSearchDocuments handles the search_documents tool invocation
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Error: invalid arguments"), nil
	}

	index, ok := args["index"].(string)
	if !ok || index == "" {
		return mcp.NewToolResultError("Error: index parameter is required"), nil
	}

	body, ok := args["body"].(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Error: body parameter is required and must be an object"), nil
	}

	s.logger.Info("searching documents", "index", index)

	response, err := s.backend.Search(ctx, index, body)
	if err != nil {
		s.logger.Error("error searching documents", "index", index, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err)), nil
	}
	return mcp.NewToolResultText(response), nil
}

// requireIndex extracts the mandatory index parameter. A missing parameter
// yields an error content item, not a Go error.
func requireIndex(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", mcp.NewToolResultError("Error: invalid arguments")
	}
	index, ok := args["index"].(string)
	if !ok || index == "" {
		return "", mcp.NewToolResultError("Error: index parameter is required")
	}
	return index, nil
}

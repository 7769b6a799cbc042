package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// clusterHealthTool returns the tool definition for get_cluster_health
func clusterHealthTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_cluster_health",
		Description: "Get health status of the OpenSearch cluster, including the number of nodes and shards",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// clusterStatsTool returns the tool definition for get_cluster_stats
func clusterStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_cluster_stats",
		Description: "Get cluster-wide statistics: index metrics (shard numbers, store size, memory usage) and node information (roles, os, jvm versions, cpu, plugins)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// listIndicesTool returns the tool definition for list_indices
func listIndicesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_indices",
		Description: "List all indices in the OpenSearch cluster",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getMappingTool returns the tool definition for get_mapping
func getMappingTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_mapping",
		Description: "Get the field mapping for an index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index",
				},
			},
			Required: []string{"index"},
		},
	}
}

// getSettingsTool returns the tool definition for get_settings
func getSettingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_settings",
		Description: "Get the settings for an index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index",
				},
			},
			Required: []string{"index"},
		},
	}
}

// searchDocumentsTool returns the tool definition for search_documents
func searchDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_documents",
		Description: "Search documents in a specified index using a custom OpenSearch query DSL body",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index to search",
				},
				"body": map[string]interface{}{
					"type":        "object",
					"description": "OpenSearch query DSL",
				},
			},
			Required: []string{"index", "body"},
		},
	}
}

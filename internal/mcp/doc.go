// Package mcp implements the Model Context Protocol (MCP) server for the
// OpenSearch adapter.
//
// The server exposes six tools to AI assistants, each a direct pass-through
// to one OpenSearch operation:
//   - get_cluster_health: cluster health status
//   - get_cluster_stats: cluster-wide statistics
//   - list_indices: all indices in the cluster
//   - get_mapping: field mapping for an index
//   - get_settings: settings for an index
//   - search_documents: query-DSL search against an index
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol. This package owns the tool registry and
// dispatch; message delivery is handled by the transport package, which
// feeds JSON-RPC messages into the underlying MCPServer.
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// # Results
//
// Every tool returns a single text content item containing the raw cluster
// response. Failures are returned as error content items whose text starts
// with "Error" — a backend failure never surfaces as a protocol-level
// error, so a failed tool call cannot tear down the connection.
//
// # Tool: search_documents
//
// Search a specified index with a custom query:
//
//	Request:
//	{
//	  "name": "search_documents",
//	  "arguments": {
//	    "index": "logs",
//	    "body": {"query": {"match_all": {}}}
//	  }
//	}
//
// The result text is the cluster's search response, unmodified.
package mcp

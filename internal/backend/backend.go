// Package backend is the facade over the OpenSearch HTTP client. The rest
// of the system treats it as an opaque capability with six operations.
package backend

import "context"

// Client is the connection handle to the search cluster. It is constructed
// once at startup, shared read-only by all tool handlers, and safe for
// concurrent use.
type Client interface {
	// ClusterHealth returns the cluster health document.
	ClusterHealth(ctx context.Context) (string, error)

	// ClusterStats returns cluster-wide statistics.
	ClusterStats(ctx context.Context) (string, error)

	// ListIndices returns all indices in the cluster.
	ListIndices(ctx context.Context) (string, error)

	// GetMapping returns the mapping for an index.
	GetMapping(ctx context.Context, index string) (string, error)

	// GetSettings returns the settings for an index.
	GetSettings(ctx context.Context, index string) (string, error)

	// Search runs a query-DSL search against an index.
	Search(ctx context.Context, index string, body map[string]interface{}) (string, error)
}

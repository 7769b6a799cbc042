package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dshills/opensearch-mcp/internal/config"
)

// OpenSearch implements Client over the official OpenSearch Go client.
type OpenSearch struct {
	client *opensearch.Client
}

// New creates an OpenSearch backend from the given configuration. The
// underlying client is stateless from the caller's perspective and is
// reused for the process lifetime.
func New(cfg *config.Config) (*OpenSearch, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{cfg.Host},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: !cfg.TLSVerify, //nolint:gosec // matches cluster setups with self-signed certs
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", err)
	}
	return &OpenSearch{client: client}, nil
}

// ClusterHealth returns the cluster health document.
func (o *OpenSearch) ClusterHealth(ctx context.Context) (string, error) {
	res, err := o.client.Cluster.Health(
		o.client.Cluster.Health.WithContext(ctx),
	)
	return collect(res, err)
}

// ClusterStats returns cluster-wide statistics.
func (o *OpenSearch) ClusterStats(ctx context.Context) (string, error) {
	res, err := o.client.Cluster.Stats(
		o.client.Cluster.Stats.WithContext(ctx),
	)
	return collect(res, err)
}

// ListIndices returns all indices via the cat API in JSON format.
func (o *OpenSearch) ListIndices(ctx context.Context) (string, error) {
	res, err := o.client.Cat.Indices(
		o.client.Cat.Indices.WithContext(ctx),
		o.client.Cat.Indices.WithFormat("json"),
	)
	return collect(res, err)
}

// GetMapping returns the mapping for an index.
func (o *OpenSearch) GetMapping(ctx context.Context, index string) (string, error) {
	res, err := o.client.Indices.GetMapping(
		o.client.Indices.GetMapping.WithContext(ctx),
		o.client.Indices.GetMapping.WithIndex(index),
	)
	return collect(res, err)
}

// GetSettings returns the settings for an index.
func (o *OpenSearch) GetSettings(ctx context.Context, index string) (string, error) {
	res, err := o.client.Indices.GetSettings(
		o.client.Indices.GetSettings.WithContext(ctx),
		o.client.Indices.GetSettings.WithIndex(index),
	)
	return collect(res, err)
}

// Search runs a query-DSL search against an index.
func (o *OpenSearch) Search(ctx context.Context, index string, body map[string]interface{}) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode search body: %w", err)
	}
	res, err := o.client.Search(
		o.client.Search.WithContext(ctx),
		o.client.Search.WithIndex(index),
		o.client.Search.WithBody(bytes.NewReader(payload)),
	)
	return collect(res, err)
}

// collect reads an API response into a string, converting transport errors
// and error-status responses into Go errors carrying the response text.
func collect(res *opensearchapi.Response, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("%s: %s", res.Status(), bytes.TrimSpace(data))
	}
	return string(data), nil
}

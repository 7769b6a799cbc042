package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements backend.Client with canned responses.
type fakeBackend struct {
	health   string
	stats    string
	indices  string
	mappings map[string]string
	settings map[string]string
	search   string
	err      error

	searchedIndex string
	searchedBody  map[string]interface{}
}

func (f *fakeBackend) ClusterHealth(ctx context.Context) (string, error) {
	return f.health, f.err
}

func (f *fakeBackend) ClusterStats(ctx context.Context) (string, error) {
	return f.stats, f.err
}

func (f *fakeBackend) ListIndices(ctx context.Context) (string, error) {
	return f.indices, f.err
}

func (f *fakeBackend) GetMapping(ctx context.Context, index string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	m, ok := f.mappings[index]
	if !ok {
		return "", errors.New("index_not_found_exception: no such index [" + index + "]")
	}
	return m, nil
}

func (f *fakeBackend) GetSettings(ctx context.Context, index string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	s, ok := f.settings[index]
	if !ok {
		return "", errors.New("index_not_found_exception: no such index [" + index + "]")
	}
	return s, nil
}

func (f *fakeBackend) Search(ctx context.Context, index string, body map[string]interface{}) (string, error) {
	f.searchedIndex = index
	f.searchedBody = body
	return f.search, f.err
}

func testServer(be *fakeBackend) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(be, logger)
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText unwraps the single text content item of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1, "tools return exactly one content item")
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "content item should be text")
	require.NotEmpty(t, tc.Text)
	return tc.Text
}

func TestClusterHealthTool(t *testing.T) {
	be := &fakeBackend{health: `{"status":"green","number_of_nodes":3}`}
	s := testServer(be)

	result, err := s.handleClusterHealth(context.Background(), callRequest("get_cluster_health", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "green")
}

func TestClusterHealthToolBackendError(t *testing.T) {
	be := &fakeBackend{err: errors.New("connection refused")}
	s := testServer(be)

	result, err := s.handleClusterHealth(context.Background(), callRequest("get_cluster_health", nil))
	require.NoError(t, err, "backend failures must not escape the handler boundary")
	assert.True(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "Error")
	assert.Contains(t, text, "connection refused")
}

func TestClusterStatsTool(t *testing.T) {
	be := &fakeBackend{stats: `{"indices":{"count":7}}`}
	s := testServer(be)

	result, err := s.handleClusterStats(context.Background(), callRequest("get_cluster_stats", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"count":7`)
}

func TestListIndicesTool(t *testing.T) {
	be := &fakeBackend{indices: `[{"index":"a"},{"index":"b"}]`}
	s := testServer(be)

	result, err := s.handleListIndices(context.Background(), callRequest("list_indices", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "a")
	assert.Contains(t, text, "b")
}

func TestGetMappingTool(t *testing.T) {
	be := &fakeBackend{mappings: map[string]string{"logs": `{"logs":{"mappings":{}}}`}}
	s := testServer(be)

	result, err := s.handleGetMapping(context.Background(), callRequest("get_mapping", map[string]interface{}{"index": "logs"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "mappings")
}

func TestGetMappingToolMissingIndex(t *testing.T) {
	be := &fakeBackend{mappings: map[string]string{}}
	s := testServer(be)

	result, err := s.handleGetMapping(context.Background(), callRequest("get_mapping", map[string]interface{}{"index": "missing"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "missing")
}

func TestGetMappingToolMissingParameter(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no arguments", nil},
		{"empty arguments", map[string]interface{}{}},
		{"empty index", map[string]interface{}{"index": ""}},
		{"wrong type", map[string]interface{}{"index": 42}},
	}

	be := &fakeBackend{}
	s := testServer(be)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleGetMapping(context.Background(), callRequest("get_mapping", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "index parameter is required")
		})
	}
}

func TestGetSettingsTool(t *testing.T) {
	be := &fakeBackend{settings: map[string]string{"logs": `{"logs":{"settings":{"number_of_shards":"1"}}}`}}
	s := testServer(be)

	result, err := s.handleGetSettings(context.Background(), callRequest("get_settings", map[string]interface{}{"index": "logs"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "number_of_shards")
}

func TestSearchDocumentsTool(t *testing.T) {
	be := &fakeBackend{search: `{"hits":{"total":{"value":2}}}`}
	s := testServer(be)

	body := map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}}
	result, err := s.handleSearchDocuments(context.Background(), callRequest("search_documents", map[string]interface{}{
		"index": "logs",
		"body":  body,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "hits")

	assert.Equal(t, "logs", be.searchedIndex)
	assert.Equal(t, body, be.searchedBody)
}

func TestSearchDocumentsToolValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		wantMsg string
	}{
		{
			name:    "missing index",
			args:    map[string]interface{}{"body": map[string]interface{}{}},
			wantMsg: "index parameter is required",
		},
		{
			name:    "missing body",
			args:    map[string]interface{}{"index": "logs"},
			wantMsg: "body parameter is required",
		},
		{
			name:    "body wrong type",
			args:    map[string]interface{}{"index": "logs", "body": "not-an-object"},
			wantMsg: "body parameter is required",
		},
	}

	be := &fakeBackend{}
	s := testServer(be)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleSearchDocuments(context.Background(), callRequest("search_documents", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.wantMsg)
		})
	}
}

func TestRegisteredToolNames(t *testing.T) {
	s := testServer(&fakeBackend{})
	assert.NotNil(t, s.MCP())

	for _, tool := range []mcp.Tool{
		clusterHealthTool(),
		clusterStatsTool(),
		listIndicesTool(),
		getMappingTool(),
		getSettingsTool(),
		searchDocumentsTool(),
	} {
		assert.NotEmpty(t, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.Equal(t, "object", tool.InputSchema.Type)
	}
}

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/rover-sync/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the client refuses to talk to servers that do not identify as Elasticsearch
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := newClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return c
}

func TestSearch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rover-universe-assets/_search", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("size"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"query": map[string]any{"match": map[string]any{"state": "NY"}}}, body)

		w.Write([]byte(`{"hits": {"total": {"value": 1}, "hits": [{"_id": "a1", "_source": {"id": "a1"}}]}}`))
	})

	response, err := c.Search(context.Background(), "rover-universe-assets", 25, map[string]any{"match": map[string]any{"state": "NY"}})
	require.NoError(t, err)

	assert.Equal(t, 1, TotalHits(response))
}

func TestSearch_ErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"type": "index_not_found_exception"}}`))
	})

	_, err := c.Search(context.Background(), "missing", 10, map[string]any{"match_all": map[string]any{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRemoteCall)
	assert.Contains(t, err.Error(), "index_not_found_exception")
}

func TestNewFromEnv_MissingCredentials(t *testing.T) {
	t.Setenv("ELASTIC_SEARCH_CLOUD_ID", "")
	t.Setenv("ELASTIC_USERNAME", "")
	t.Setenv("ELASTIC_PASSWORD", "")

	_, err := NewFromEnv("")
	assert.ErrorIs(t, err, models.ErrMissingConfiguration)
}

func TestTotalHits(t *testing.T) {
	assert.Equal(t, -1, TotalHits(map[string]any{}))
	assert.Equal(t, -1, TotalHits(map[string]any{"hits": map[string]any{"total": 3}}))
}

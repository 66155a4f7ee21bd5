// Package search runs queries against the Elasticsearch asset index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/kelsos/rover-sync/internal/auth"
	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
)

// Client is a thin wrapper over the Elasticsearch client returning decoded responses
type Client struct {
	es *elasticsearch.Client
}

// NewClient connects to an Elastic Cloud deployment with basic auth
func NewClient(credentials auth.ElasticSearchCredentials) (*Client, error) {
	return newClient(elasticsearch.Config{
		CloudID:  credentials.CloudID,
		Username: credentials.Username,
		Password: credentials.Password,
	})
}

// NewFromEnv loads the search credentials from dotenvPath and connects
func NewFromEnv(dotenvPath string) (*Client, error) {
	credentials, err := auth.LoadElasticSearchCredentials(dotenvPath)
	if err != nil {
		return nil, err
	}
	return NewClient(credentials)
}

func newClient(cfg elasticsearch.Config) (*Client, error) {
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	return &Client{es: es}, nil
}

// Search runs query against index and returns the decoded response body
func (c *Client) Search(ctx context.Context, index string, size int, query map[string]any) (map[string]any, error) {
	body, err := json.Marshal(map[string]any{"query": query})
	if err != nil {
		return nil, fmt.Errorf("error marshaling search query: %w", err)
	}

	logger.Debug("Searching index %s (size %d): %s", index, size, body)

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithSize(size),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search on %s: %w", models.ErrRemoteCall, index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: search on %s returned %s: %s", models.ErrRemoteCall, index, res.Status(), raw)
	}

	var response map[string]any
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: error decoding search response: %w", models.ErrRemoteCall, err)
	}

	return response, nil
}

// TotalHits reads hits.total.value from a decoded response, or -1 when absent
func TotalHits(response map[string]any) int {
	hits, ok := response["hits"].(map[string]any)
	if !ok {
		return -1
	}
	total, ok := hits["total"].(map[string]any)
	if !ok {
		return -1
	}
	value, ok := total["value"].(float64)
	if !ok {
		return -1
	}
	return int(value)
}

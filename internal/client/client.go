package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/kelsos/rover-sync/internal/utils"
)

const defaultTimeout = 30 * time.Second

// APIClient handles HTTP communication with one Rover service
type APIClient struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

// NewAPIClient creates a client for the service at baseURL. headers are sent
// with every request, usually auth.Header.ToMap().
func NewAPIClient(baseURL string, headers map[string]string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	copied := make(map[string]string, len(headers))
	for key, value := range headers {
		copied[key] = value
	}

	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: copied,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the service root the client was created with
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// BuildURL constructs a full URL for the given endpoint
func (c *APIClient) BuildURL(endpoint string) string {
	if endpoint == "" {
		return c.baseURL
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// Get makes a GET request to the specified endpoint
func (c *APIClient) Get(ctx context.Context, endpoint string, result interface{}) error {
	return c.request(ctx, http.MethodGet, endpoint, nil, result)
}

// Post makes a POST request to the specified endpoint
func (c *APIClient) Post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPost, endpoint, body, result)
}

func (c *APIClient) request(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	return utils.DoJSON(ctx, c.httpClient, method, c.BuildURL(endpoint), c.headers, body, result)
}

package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
)

// DoJSON sends body as JSON and decodes a 200 response into result.
// Transport, status and decoding failures are wrapped with models.ErrRemoteCall.
func DoJSON(ctx context.Context, httpClient *http.Client, method, url string, headers map[string]string, body, result interface{}) error {
	start := time.Now()
	logger.Debug("Starting %s request to %s", method, url)

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		logger.Error("Request to %s failed after %v: %v", url, elapsed, err)
		return fmt.Errorf("%w: request to %s: %w", models.ErrRemoteCall, url, err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	logger.Debug("Request to %s completed in %v with status %d", url, elapsed, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Error("%s: HTTP error %d: %s", url, resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("%w: HTTP error %d: %s", models.ErrRemoteCall, resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			logger.Error("%s: Error decoding response: %v", url, err)
			return fmt.Errorf("%w: error decoding response: %w", models.ErrRemoteCall, err)
		}
	}

	return nil
}

// FetchWithValidation makes an HTTP request and decodes the response into a new T
func FetchWithValidation[T any](ctx context.Context, url string, method string, headers map[string]string, body interface{}) (*T, error) {
	var result T
	if err := DoJSON(ctx, http.DefaultClient, method, url, headers, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

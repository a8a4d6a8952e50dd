// Package swpc fetches forecast products from the NOAA Space Weather
// Prediction Center.
package swpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client retrieves the plaintext 3-day forecast product.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a forecast client for the given product URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch issues a single GET for the forecast text. One attempt, no retries;
// a transport failure or non-success status aborts the run.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch forecast: unexpected status %d from %s", resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read forecast body: %w", err)
	}

	c.logger.Debug("forecast fetched", "url", c.url, "bytes", len(body))
	return string(body), nil
}

// Package storefront is a client for the storefront order email API.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the storefront client.
type Config struct {
	// BaseURL is the root URL of the storefront server.
	// Example: "https://api.singkongkejumbahwiryo.com"
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with a 45s timeout is used, which covers
	// two vendor calls on the server.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 45 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client is the storefront SDK client.
type Client struct {
	cfg Config
}

// NewClient creates a new storefront client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// SendConfirmationEmail asks the server to email the order confirmation to
// the customer and the new-order alert to the shop. A *SendFailedError means
// one of the emails may already have been delivered; resending the order
// will duplicate it.
func (c *Client) SendConfirmationEmail(ctx context.Context, order Order) (*ConfirmationResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/send-confirmation-email", order)
	if err != nil {
		return nil, err
	}

	var resp ConfirmationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("storefront: failed to parse response: %w", err)
	}
	return &resp, nil
}

// Health returns the server health report. A degraded server answers 503
// with the same report, which is returned without an error.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	status, body, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusServiceUnavailable {
		return nil, parseAPIError(status, body)
	}

	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("storefront: failed to parse health: %w", err)
	}
	return &h, nil
}

// do sends a request and turns error statuses into errors.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	status, body, err := c.send(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, parseAPIError(status, body)
	}
	return body, nil
}

// send sends a request to the storefront API.
func (c *Client) send(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("storefront: failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("storefront: failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("storefront: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("storefront: failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

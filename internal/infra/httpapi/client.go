package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskdeck/internal/domain"
)

// DefaultTimeout bounds a single HTTP exchange, including retries inside
// the pipeline.
const DefaultTimeout = 30 * time.Second

// Client executes JSON requests against the REST backend through the
// middleware pipeline.
type Client struct {
	roundTrip RoundTripFunc
	baseURL   string
}

// ClientConfig assembles a Client and its pipeline.
type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Middleware []Middleware
}

// NewClient creates a Client. The listed middlewares wrap the transport in
// order, first middleware outermost.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	base := func(req *http.Request) (*http.Response, error) {
		return httpClient.Do(req)
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		roundTrip: Chain(base, cfg.Middleware...),
	}
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    "Invalid response from server.",
			Details:    err.Error(),
		}
	}
	return nil
}

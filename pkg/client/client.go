// Package client is the Go SDK for the AlloyFrontier exploration API.  It
// mirrors the HTTP surface one-to-one; the CLI is built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/AlloyFrontier/pkg/types/alloy"
)

// Version is the SDK version reported in the User-Agent.
const Version = "0.1.0"

// DefaultTimeout bounds each request end-to-end; optimize calls can run
// long.
const DefaultTimeout = 120 * time.Second

// APIError is a non-2xx response decoded into the API's error body.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alloyfrontier: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// IsNotFound reports a 404 response.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsUnauthorized reports a 401 response (access key rejected).
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// IsServerError reports a 5xx response.
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// Client calls the exploration API.
type Client struct {
	baseURL    string
	accessKey  string
	userAgent  string
	httpClient *http.Client
}

// NewClient validates baseURL and builds a Client.  accessKey may be empty
// when the server's gate is disabled.
func NewClient(baseURL, accessKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("baseURL scheme must be http or https")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accessKey:  accessKey,
		userAgent:  "alloyfrontier-go/" + Version,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do executes one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessKey != "" {
		req.Header.Set("X-Access-Key", c.accessKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Elements fetches the fixed element catalog.
func (c *Client) Elements(ctx context.Context) ([]alloy.Element, error) {
	var out []alloy.Element
	err := c.do(ctx, http.MethodGet, "/api/v1/elements", nil, &out)
	return out, err
}

// Constraints fetches the current constraint pair.
func (c *Client) Constraints(ctx context.Context) (alloy.Constraints, error) {
	var out alloy.Constraints
	err := c.do(ctx, http.MethodGet, "/api/v1/constraints", nil, &out)
	return out, err
}

// UpdateConstraint writes one constraint field and returns the resulting
// (possibly clamped) pair.
func (c *Client) UpdateConstraint(ctx context.Context, field string, value float64) (alloy.Constraints, error) {
	var out alloy.Constraints
	err := c.do(ctx, http.MethodPut, "/api/v1/constraints",
		alloy.ConstraintUpdate{Field: field, Value: value}, &out)
	return out, err
}

// Optimize runs the optimizer against the current constraints.
func (c *Client) Optimize(ctx context.Context) (alloy.OptimizeResult, error) {
	var out alloy.OptimizeResult
	err := c.do(ctx, http.MethodPost, "/api/v1/optimize", nil, &out)
	return out, err
}

// Solutions fetches the ranked candidate set with the current selection.
func (c *Client) Solutions(ctx context.Context) (alloy.SolutionSet, error) {
	var out alloy.SolutionSet
	err := c.do(ctx, http.MethodGet, "/api/v1/solutions", nil, &out)
	return out, err
}

// Select moves the selection and returns the updated set.
func (c *Client) Select(ctx context.Context, index int) (alloy.SolutionSet, error) {
	var out alloy.SolutionSet
	err := c.do(ctx, http.MethodPost, "/api/v1/solutions/select",
		alloy.SelectRequest{Index: index}, &out)
	return out, err
}

// Active fetches the currently selected candidate.
func (c *Client) Active(ctx context.Context) (alloy.Solution, error) {
	var out alloy.Solution
	err := c.do(ctx, http.MethodGet, "/api/v1/solutions/active", nil, &out)
	return out, err
}

// Insight fetches the narrative and dominant driver for the active
// candidate.
func (c *Client) Insight(ctx context.Context) (alloy.Insight, error) {
	var out alloy.Insight
	err := c.do(ctx, http.MethodGet, "/api/v1/insight", nil, &out)
	return out, err
}

// Scatter fetches the strength/cost frontier projection.
func (c *Client) Scatter(ctx context.Context) ([]alloy.ScatterPoint, error) {
	var out []alloy.ScatterPoint
	err := c.do(ctx, http.MethodGet, "/api/v1/projections/scatter", nil, &out)
	return out, err
}

// Radar fetches the composition radar projection for the active candidate.
func (c *Client) Radar(ctx context.Context) ([]alloy.RadarAxis, error) {
	var out []alloy.RadarAxis
	err := c.do(ctx, http.MethodGet, "/api/v1/projections/radar", nil, &out)
	return out, err
}

// History fetches the most recent optimization runs.
func (c *Client) History(ctx context.Context, limit int) ([]alloy.RunRecord, error) {
	path := "/api/v1/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []alloy.RunRecord
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ExportReport renders the current dashboard state into a PDF artifact on
// the server.
func (c *Client) ExportReport(ctx context.Context) (alloy.ExportResult, error) {
	var out alloy.ExportResult
	err := c.do(ctx, http.MethodPost, "/api/v1/report/export", nil, &out)
	return out, err
}

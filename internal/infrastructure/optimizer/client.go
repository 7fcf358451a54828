// Package optimizer implements the HTTP client for the external
// multi-objective optimizer service.  The wire contract is fixed:
//
//	POST {base}/optimize  {"min_strength": n, "max_cost": n}
//	→ {"solutions": [{"composition": [...], "metrics": {...}}, ...]}
//
// An absent "solutions" field is an empty candidate set, not an error.
package optimizer

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

	"github.com/turtacn/AlloyFrontier/internal/domain/catalog"
	"github.com/turtacn/AlloyFrontier/internal/domain/constraint"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// maxResponseBytes bounds the decoded optimizer response.
const maxResponseBytes = 8 << 20

// Client talks to the optimizer service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient validates baseURL and returns a Client.  timeout bounds each
// request end-to-end.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.InvalidParam("invalid optimizer base URL").WithCause(err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.InvalidParam("optimizer base URL scheme must be http or https").
			WithDetail(baseURL)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// optimizeRequest is the wire request body.
type optimizeRequest struct {
	MinStrength float64 `json:"min_strength"`
	MaxCost     float64 `json:"max_cost"`
}

// wireSolution is one solution as the optimizer encodes it.
type wireSolution struct {
	Composition []float64 `json:"composition"`
	Objectives  []float64 `json:"objectives"`
	Metrics     struct {
		Strength  float64 `json:"strength"`
		Cost      float64 `json:"cost"`
		Stability float64 `json:"stability"`
	} `json:"metrics"`
}

// optimizeResponse is the wire response body.  Status/message accompany the
// optimizer's error path (non-convergence).
type optimizeResponse struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Solutions []wireSolution `json:"solutions"`
}

// Optimize submits the constraints and returns the optimizer's ranked
// candidate sequence.  The returned order is the optimizer's ranking and is
// preserved exactly.  An empty or absent solutions list yields an empty,
// non-nil slice.
func (c *Client) Optimize(ctx context.Context, cons constraint.Constraints) ([]solution.Candidate, error) {
	body, err := json.Marshal(optimizeRequest{MinStrength: cons.MinStrength, MaxCost: cons.MaxCost})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode optimize request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/optimize", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build optimize request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeOptimizerUnreachable, "optimize request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeOptimizerUnreachable, "failed to read optimize response")
	}

	var decoded optimizeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, errors.CodeOptimizerBadResponse, "failed to decode optimize response").
			WithDetail(fmt.Sprintf("status=%d", resp.StatusCode))
	}

	// The optimizer reports non-convergence with a 4xx and an error status.
	if resp.StatusCode != http.StatusOK {
		if decoded.Status == "error" && decoded.Message != "" {
			return nil, errors.New(errors.CodeOptimizerNoConvergence, decoded.Message)
		}
		return nil, errors.New(errors.CodeOptimizerBadResponse, "unexpected optimizer status").
			WithDetail(fmt.Sprintf("status=%d", resp.StatusCode))
	}

	candidates := make([]solution.Candidate, 0, len(decoded.Solutions))
	for i, ws := range decoded.Solutions {
		cand := solution.Candidate{
			Composition: ws.Composition,
			Objectives:  ws.Objectives,
			Metrics: solution.Metrics{
				Strength:  ws.Metrics.Strength,
				Cost:      ws.Metrics.Cost,
				Stability: ws.Metrics.Stability,
			},
		}
		if !cand.Valid() {
			return nil, errors.New(errors.CodeCompositionMismatch, "composition length does not match element catalog").
				WithDetail(fmt.Sprintf("solution=%d len=%d want=%d", i, len(ws.Composition), catalog.Size))
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// Ping probes the optimizer's health endpoint (GET {base}/).
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to build health request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeOptimizerUnreachable, "optimizer health probe failed")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CodeOptimizerUnreachable, "optimizer health probe returned non-200").
			WithDetail(fmt.Sprintf("status=%d", resp.StatusCode))
	}
	return nil
}

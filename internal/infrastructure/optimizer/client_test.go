package optimizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AlloyFrontier/internal/domain/constraint"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://optimizer", time.Second)
	assert.Error(t, err)

	_, err = NewClient("://bad", time.Second)
	assert.Error(t, err)
}

func TestOptimizeDecodesSolutions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/optimize", r.URL.Path)

		var req map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 650.0, req["min_strength"])
		assert.Equal(t, 380.0, req["max_cost"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"solutions": [
				{
					"composition": [0.8, 0.1, 0.0, 0.05, 0.0, 0.05],
					"objectives": [-812.5, 260.0],
					"metrics": {"strength": 812.5, "cost": 260.0, "stability": 0.94}
				},
				{
					"composition": [0.2, 0.3, 0.1, 0.6, 0.1, 0.4],
					"metrics": {"strength": 702.0, "cost": 410.0, "stability": 0.97}
				}
			]
		}`))
	})

	got, err := c.Optimize(context.Background(), constraint.Constraints{MinStrength: 650, MaxCost: 380})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 812.5, got[0].Metrics.Strength)
	assert.Equal(t, 260.0, got[0].Metrics.Cost)
	assert.Equal(t, 0.94, got[0].Metrics.Stability)
	assert.Equal(t, []float64{0.8, 0.1, 0.0, 0.05, 0.0, 0.05}, got[0].Composition)
	// Ranking order must be preserved.
	assert.Equal(t, 702.0, got[1].Metrics.Strength)
}

func TestOptimizeAbsentSolutionsIsEmptySet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "success"}`))
	})

	got, err := c.Optimize(context.Background(), constraint.Constraints{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOptimizeNonConvergence(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": "error", "message": "Optimization failed to converge"}`))
	})

	_, err := c.Optimize(context.Background(), constraint.Constraints{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeOptimizerNoConvergence))
}

func TestOptimizeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Optimize(context.Background(), constraint.Constraints{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeOptimizerUnreachable))
}

func TestOptimizeMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"solutions": "not-a-list"`))
	})

	_, err := c.Optimize(context.Background(), constraint.Constraints{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeOptimizerBadResponse))
}

func TestOptimizeCompositionMismatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"solutions": [{"composition": [0.5, 0.5], "metrics": {"strength": 1, "cost": 1}}]}`))
	})

	_, err := c.Optimize(context.Background(), constraint.Constraints{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeCompositionMismatch))
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Write([]byte(`{"status": "online"}`))
	})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestPingNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeOptimizerUnreachable))
}

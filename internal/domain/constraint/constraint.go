// Package constraint holds the user-editable optimization request
// parameters.  Writes are clamped into each field's bound, never rejected;
// mutation has no side effect beyond updating the held value and in
// particular does not trigger a refetch.
package constraint

import (
	"sync"

	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// Field identifies one editable constraint.
type Field string

const (
	FieldMinStrength Field = "minStrength"
	FieldMaxCost     Field = "maxCost"
)

// Bounds for each field.  Out-of-range input is silently corrected.
const (
	MinStrengthFloor = 400.0
	MinStrengthCeil  = 1100.0
	MaxCostFloor     = 200.0
	MaxCostCeil      = 600.0
)

// Defaults mirror the optimizer service defaults.
const (
	DefaultMinStrength = 600.0
	DefaultMaxCost     = 400.0
)

// Constraints is the request-parameter pair sent to the optimizer.
type Constraints struct {
	MinStrength float64 `json:"min_strength"`
	MaxCost     float64 `json:"max_cost"`
}

// Model owns the current constraint values.  Safe for concurrent use.
type Model struct {
	mu   sync.RWMutex
	cur  Constraints
}

// NewModel returns a Model initialized with the defaults.
func NewModel() *Model {
	return &Model{cur: Constraints{MinStrength: DefaultMinStrength, MaxCost: DefaultMaxCost}}
}

// Get returns the current constraint values.
func (m *Model) Get() Constraints {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Set clamps raw into field's bound and stores it, returning the resulting
// Constraints.  Unknown fields are the only error path; out-of-range values
// are corrected, not rejected.
func (m *Model) Set(field Field, raw float64) (Constraints, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch field {
	case FieldMinStrength:
		m.cur.MinStrength = clamp(raw, MinStrengthFloor, MinStrengthCeil)
	case FieldMaxCost:
		m.cur.MaxCost = clamp(raw, MaxCostFloor, MaxCostCeil)
	default:
		return m.cur, errors.InvalidParam("unknown constraint field").WithDetail(string(field))
	}
	return m.cur, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

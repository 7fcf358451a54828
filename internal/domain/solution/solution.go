// Package solution holds the ordered candidate set returned by the external
// optimizer and the current selection.  Candidates are opaque, immutable
// values; the dashboard never mutates composition or metrics.
package solution

import "github.com/turtacn/AlloyFrontier/internal/domain/catalog"

// BatchNumberBase is added to a candidate's position to form its display
// identifier ("batch number").
const BatchNumberBase = 100

// Metrics carries the optimizer-evaluated properties of one candidate.
type Metrics struct {
	Strength float64 `json:"strength"`
	Cost     float64 `json:"cost"`
	// Stability is reported by the optimizer's surrogate model; carried
	// opaquely for display, unused by the core.
	Stability float64 `json:"stability,omitempty"`
}

// Candidate is one alloy formulation from the optimizer's ranked set.
// Composition is aligned positionally to the element catalog.
type Candidate struct {
	Composition []float64 `json:"composition"`
	Metrics     Metrics   `json:"metrics"`
	// Objectives is the raw objective vector from the optimizer, carried
	// opaquely.
	Objectives []float64 `json:"objectives,omitempty"`
}

// Valid reports whether the candidate's composition matches the catalog size.
func (c Candidate) Valid() bool {
	return len(c.Composition) == catalog.Size
}

// BatchNumber returns the display identifier for position idx.
func BatchNumber(idx int) int {
	return idx + BatchNumberBase
}

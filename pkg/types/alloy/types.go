// Package alloy defines the wire types shared by the HTTP handlers and the
// Go SDK.  These mirror the internal domain types but are decoupled from
// them so the API surface can evolve without leaking internal packages.
package alloy

import "time"

// Constraints is the user-editable optimizer request parameter pair.
type Constraints struct {
	MinStrength float64 `json:"min_strength"`
	MaxCost     float64 `json:"max_cost"`
}

// ConstraintUpdate is the body of a constraint write.  Out-of-range values
// are clamped server-side, never rejected.
type ConstraintUpdate struct {
	Field string  `json:"field"` // "minStrength" | "maxCost"
	Value float64 `json:"value"`
}

// Metrics carries the optimizer-evaluated properties of one solution.
type Metrics struct {
	Strength  float64 `json:"strength"`
	Cost      float64 `json:"cost"`
	Stability float64 `json:"stability,omitempty"`
}

// Solution is one candidate formulation in the optimizer's ranking.
type Solution struct {
	// BatchNumber is the display identifier: position in the set + 100.
	BatchNumber int       `json:"batch_number"`
	Composition []float64 `json:"composition"`
	Metrics     Metrics   `json:"metrics"`
}

// SolutionSet is the ordered candidate set with the current selection.
type SolutionSet struct {
	Solutions []Solution `json:"solutions"`
	// Selection is the active index, or -1 when the set is empty.
	Selection int `json:"selection"`
}

// SelectRequest selects the candidate at Index.
type SelectRequest struct {
	Index int `json:"index"`
}

// Element describes one catalog entry.
type Element struct {
	Key            string  `json:"key"`
	DisplayName    string  `json:"display_name"`
	ColorToken     string  `json:"color_token"`
	DescriptionTag string  `json:"description_tag"`
	Weight         float64 `json:"weight"`
}

// Insight is the derived narrative + dominant-driver pair for the active
// candidate.
type Insight struct {
	Narrative string  `json:"narrative"`
	Dominant  Element `json:"dominant_element"`
}

// ScatterPoint is one frontier point (strength vs. cost).
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Index int     `json:"index"`
}

// RadarAxis is one composition radar axis for the active candidate.
type RadarAxis struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// OptimizeResult reports the outcome of an optimization run.
type OptimizeResult struct {
	RunID         string        `json:"run_id"`
	SolutionCount int           `json:"solution_count"`
	Elapsed       time.Duration `json:"elapsed"`
}

// ExportResult reports a written report artifact.
type ExportResult struct {
	Filename    string `json:"filename"`
	BatchNumber int    `json:"batch_number"`
	SizeBytes   int64  `json:"size_bytes"`
}

// RunRecord is one persisted optimization run.
type RunRecord struct {
	RunID         string    `json:"run_id"`
	MinStrength   float64   `json:"min_strength"`
	MaxCost       float64   `json:"max_cost"`
	SolutionCount int       `json:"solution_count"`
	DurationMS    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

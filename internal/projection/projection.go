// Package projection produces chart-ready data from the candidate set and
// the active candidate.  Both projections are pure and referentially
// transparent: they never mutate the candidate set or the selection, and
// identical inputs always yield identical output.
package projection

import (
	"github.com/turtacn/AlloyFrontier/internal/domain/catalog"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
)

// Point is one frontier scatter point: a candidate remapped to strength (x)
// versus cost (y), tagged with its position in the candidate set.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Index int     `json:"index"`
}

// Axis is one composition radar axis: an element label with the candidate's
// percentage contribution on that element.
type Axis struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Scatter projects the candidate set onto frontier coordinates.  One point
// per candidate, order preserved, no filtering: the output length always
// equals the set's length.
func Scatter(candidates []solution.Candidate) []Point {
	out := make([]Point, len(candidates))
	for i, c := range candidates {
		out[i] = Point{X: c.Metrics.Strength, Y: c.Metrics.Cost, Index: i}
	}
	return out
}

// Radar projects the active candidate's composition onto radar axes, one per
// catalog element in catalog order, with value = composition[i] * 100.
// Returns an empty sequence when there is no active candidate or the
// composition does not align with the catalog.
func Radar(active solution.Candidate, cat []catalog.Element) []Axis {
	if len(active.Composition) != len(cat) {
		return []Axis{}
	}
	out := make([]Axis, len(cat))
	for i, e := range cat {
		out[i] = Axis{Label: e.DisplayName, Value: active.Composition[i] * 100}
	}
	return out
}

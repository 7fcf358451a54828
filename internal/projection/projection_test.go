package projection

import (
	"testing"

	"github.com/turtacn/AlloyFrontier/internal/domain/catalog"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
)

func TestScatterPreservesOrderAndLength(t *testing.T) {
	set := []solution.Candidate{
		{Metrics: solution.Metrics{Strength: 620, Cost: 310}},
		{Metrics: solution.Metrics{Strength: 780, Cost: 420}},
		{Metrics: solution.Metrics{Strength: 950, Cost: 560}},
	}

	points := Scatter(set)
	if len(points) != len(set) {
		t.Fatalf("scatter length = %d, want %d", len(points), len(set))
	}
	for i, p := range points {
		if p.X != set[i].Metrics.Strength || p.Y != set[i].Metrics.Cost {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, p.X, p.Y, set[i].Metrics.Strength, set[i].Metrics.Cost)
		}
		if p.Index != i {
			t.Errorf("point %d carries index %d", i, p.Index)
		}
	}
}

func TestScatterEmptySet(t *testing.T) {
	if got := Scatter(nil); len(got) != 0 {
		t.Errorf("scatter of empty set has %d points", len(got))
	}
}

func TestRadarValues(t *testing.T) {
	comp := []float64{0.80, 0.10, 0.00, 0.05, 0.00, 0.05}
	axes := Radar(solution.Candidate{Composition: comp}, catalog.Catalog())

	if len(axes) != catalog.Size {
		t.Fatalf("radar length = %d, want %d", len(axes), catalog.Size)
	}
	for i, a := range axes {
		if want := comp[i] * 100; a.Value != want {
			t.Errorf("axis %d value = %v, want %v", i, a.Value, want)
		}
		if a.Label != catalog.At(i).DisplayName {
			t.Errorf("axis %d label = %q, want %q", i, a.Label, catalog.At(i).DisplayName)
		}
	}
}

func TestRadarNoActiveCandidate(t *testing.T) {
	if got := Radar(solution.Candidate{}, catalog.Catalog()); len(got) != 0 {
		t.Errorf("radar without active candidate has %d axes", len(got))
	}
}

func TestProjectionsDoNotMutateInput(t *testing.T) {
	set := []solution.Candidate{
		{Composition: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, Metrics: solution.Metrics{Strength: 700, Cost: 350}},
	}
	_ = Scatter(set)
	_ = Radar(set[0], catalog.Catalog())

	if set[0].Metrics.Strength != 700 || set[0].Composition[2] != 0.3 {
		t.Error("projection mutated its input")
	}
}

// Package analytics derives the narrative insight and dominant-driver
// attribution for the active candidate.  Everything here is pure: identical
// inputs always yield an identical Insight, and nothing is stored.
package analytics

import (
	"github.com/turtacn/AlloyFrontier/internal/domain/catalog"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
)

// Insight is the derived narrative + dominant-driver pair for a candidate.
// It is ephemeral; recomputed whenever the active candidate changes.
type Insight struct {
	Narrative string          `json:"narrative"`
	Dominant  catalog.Element `json:"dominant_element"`
}

// narrativeRule pairs a predicate over the composition vector with the
// message emitted when it holds.
type narrativeRule struct {
	matches func(comp []float64) bool
	message string
}

// narrativeRules is evaluated top to bottom; the first satisfied rule wins.
// The predicates are not mutually exclusive: a later rule is unreachable
// once an earlier one matches, even if its own condition also holds.  In
// particular rule 4 repeats rule 2's chromium test and fires only when
// molybdenum is at or below 0.6.  The order is load-bearing; do not sort or
// merge these.
var narrativeRules = []narrativeRule{
	{
		matches: func(c []float64) bool { return c[catalog.Carbon] > 0.75 },
		message: "High-hardness formulation: elevated carbon drives wear resistance, suited to abrasive service such as tooling and cutting edges.",
	},
	{
		matches: func(c []float64) bool {
			return c[catalog.Chromium] > 0.8 && c[catalog.Molybdenum] > 0.6
		},
		message: "Heat-resistant formulation: the chromium-molybdenum pairing sustains strength at temperature and resists creep in power-plant service.",
	},
	{
		matches: func(c []float64) bool { return c[catalog.Nickel] > 0.7 },
		message: "Cryogenic-grade formulation: high nickel preserves toughness at sub-zero temperatures for LNG and cryogenic storage service.",
	},
	{
		matches: func(c []float64) bool { return c[catalog.Chromium] > 0.8 },
		message: "Corrosion-resistant formulation: chromium content supports a passive oxide layer for chemical and marine environments.",
	},
}

// defaultNarrative is used when no rule matches.
const defaultNarrative = "Balanced general-purpose formulation: no single alloying element dominates, trading peak properties for versatility across structural service."

// ComputeInsight derives the Insight for one candidate against the catalog.
// ok is false when the candidate's composition does not align with the
// catalog (no insight is defined in that case).
func ComputeInsight(cand solution.Candidate, cat []catalog.Element) (Insight, bool) {
	if len(cand.Composition) != len(cat) || len(cat) == 0 {
		return Insight{}, false
	}
	return Insight{
		Narrative: narrative(cand.Composition),
		Dominant:  cat[DominantIndex(cand.Composition, weightsOf(cat))],
	}, true
}

// narrative returns the first matching rule's message, or the default.
func narrative(comp []float64) string {
	for _, rule := range narrativeRules {
		if rule.matches(comp) {
			return rule.message
		}
	}
	return defaultNarrative
}

// DominantIndex returns the catalog index with the maximum weight-scaled
// contribution impact[i] = comp[i] * weight[i].  Ties break to the earliest
// catalog position: the scan is left-to-right and only a strictly greater
// impact displaces the current maximum.
func DominantIndex(comp, weights []float64) int {
	best := 0
	bestImpact := comp[0] * weights[0]
	for i := 1; i < len(comp); i++ {
		if impact := comp[i] * weights[i]; impact > bestImpact {
			best = i
			bestImpact = impact
		}
	}
	return best
}

func weightsOf(cat []catalog.Element) []float64 {
	out := make([]float64, len(cat))
	for i, e := range cat {
		out[i] = e.Weight
	}
	return out
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/AlloyFrontier/internal/application/exploration"
	"github.com/turtacn/AlloyFrontier/internal/domain/constraint"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
	"github.com/turtacn/AlloyFrontier/pkg/types/alloy"
)

// ExplorationHandler exposes the exploration session over HTTP.
type ExplorationHandler struct {
	service *exploration.Service
}

// NewExplorationHandler builds the handler.
func NewExplorationHandler(service *exploration.Service) *ExplorationHandler {
	return &ExplorationHandler{service: service}
}

// GetElements serves the fixed element catalog.
//
//	GET /api/v1/elements
func (h *ExplorationHandler) GetElements(w http.ResponseWriter, _ *http.Request) {
	cat := h.service.Elements()
	out := make([]alloy.Element, len(cat))
	for i, e := range cat {
		out[i] = alloy.Element{
			Key:            e.Key,
			DisplayName:    e.DisplayName,
			ColorToken:     e.ColorToken,
			DescriptionTag: e.DescriptionTag,
			Weight:         e.Weight,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetConstraints serves the current constraint pair.
//
//	GET /api/v1/constraints
func (h *ExplorationHandler) GetConstraints(w http.ResponseWriter, _ *http.Request) {
	cons := h.service.Constraints()
	writeJSON(w, http.StatusOK, alloy.Constraints{
		MinStrength: cons.MinStrength,
		MaxCost:     cons.MaxCost,
	})
}

// UpdateConstraint writes one constraint field and echoes the resulting
// (possibly clamped) pair.
//
//	PUT /api/v1/constraints
func (h *ExplorationHandler) UpdateConstraint(w http.ResponseWriter, r *http.Request) {
	var req alloy.ConstraintUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}

	updated, err := h.service.UpdateConstraint(constraint.Field(req.Field), req.Value)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alloy.Constraints{
		MinStrength: updated.MinStrength,
		MaxCost:     updated.MaxCost,
	})
}

// Optimize runs the optimizer against the current constraints and installs
// the resulting candidate set.
//
//	POST /api/v1/optimize
func (h *ExplorationHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.RunOptimization(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alloy.OptimizeResult{
		RunID:         res.RunID,
		SolutionCount: res.SolutionCount,
		Elapsed:       res.Elapsed,
	})
}

// ListSolutions serves the ranked candidate set with the current selection.
//
//	GET /api/v1/solutions
func (h *ExplorationHandler) ListSolutions(w http.ResponseWriter, _ *http.Request) {
	snap := h.service.Snapshot()
	writeJSON(w, http.StatusOK, toSolutionSet(snap))
}

// Select moves the selection to the requested index.
//
//	POST /api/v1/solutions/select
func (h *ExplorationHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req alloy.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	if err := h.service.Select(req.Index); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSolutionSet(h.service.Snapshot()))
}

// GetActive serves the currently selected candidate.
//
//	GET /api/v1/solutions/active
func (h *ExplorationHandler) GetActive(w http.ResponseWriter, _ *http.Request) {
	cand, err := h.service.Active()
	if err != nil {
		writeAppError(w, err)
		return
	}
	snap := h.service.Snapshot()
	writeJSON(w, http.StatusOK, toSolution(cand, snap.Selection))
}

// GetInsight serves the narrative and dominant driver for the active
// candidate.
//
//	GET /api/v1/insight
func (h *ExplorationHandler) GetInsight(w http.ResponseWriter, _ *http.Request) {
	ins, ok := h.service.Insight()
	if !ok {
		writeAppError(w, errors.New(errors.CodeNoActiveSolution, "no active solution"))
		return
	}
	writeJSON(w, http.StatusOK, alloy.Insight{
		Narrative: ins.Narrative,
		Dominant: alloy.Element{
			Key:            ins.Dominant.Key,
			DisplayName:    ins.Dominant.DisplayName,
			ColorToken:     ins.Dominant.ColorToken,
			DescriptionTag: ins.Dominant.DescriptionTag,
			Weight:         ins.Dominant.Weight,
		},
	})
}

// GetScatter serves the strength/cost frontier projection.
//
//	GET /api/v1/projections/scatter
func (h *ExplorationHandler) GetScatter(w http.ResponseWriter, _ *http.Request) {
	points := h.service.Scatter()
	out := make([]alloy.ScatterPoint, len(points))
	for i, p := range points {
		out[i] = alloy.ScatterPoint{X: p.X, Y: p.Y, Index: p.Index}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRadar serves the composition radar projection for the active candidate.
// An empty set yields an empty axis list, not an error.
//
//	GET /api/v1/projections/radar
func (h *ExplorationHandler) GetRadar(w http.ResponseWriter, _ *http.Request) {
	axes := h.service.Radar()
	out := make([]alloy.RadarAxis, len(axes))
	for i, a := range axes {
		out[i] = alloy.RadarAxis{Label: a.Label, Value: a.Value}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListHistory serves the most recent optimization runs.
//
//	GET /api/v1/history?limit=n
func (h *ExplorationHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 20, 100)
	runs, err := h.service.History(limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	out := make([]alloy.RunRecord, len(runs))
	for i, rec := range runs {
		out[i] = alloy.RunRecord{
			RunID:         rec.RunID,
			MinStrength:   rec.MinStrength,
			MaxCost:       rec.MaxCost,
			SolutionCount: rec.SolutionCount,
			DurationMS:    rec.Duration.Milliseconds(),
			CreatedAt:     rec.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func toSolution(cand solution.Candidate, index int) alloy.Solution {
	return alloy.Solution{
		BatchNumber: solution.BatchNumber(index),
		Composition: cand.Composition,
		Metrics: alloy.Metrics{
			Strength:  cand.Metrics.Strength,
			Cost:      cand.Metrics.Cost,
			Stability: cand.Metrics.Stability,
		},
	}
}

func toSolutionSet(snap exploration.Snapshot) alloy.SolutionSet {
	out := alloy.SolutionSet{
		Solutions: make([]alloy.Solution, len(snap.Candidates)),
		Selection: snap.Selection,
	}
	for i, c := range snap.Candidates {
		out.Solutions[i] = toSolution(c, i)
	}
	return out
}

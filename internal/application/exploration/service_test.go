package exploration

import (
	"context"
	"testing"
	"time"

	"github.com/turtacn/AlloyFrontier/internal/domain/catalog"
	"github.com/turtacn/AlloyFrontier/internal/domain/constraint"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/storage/history"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// stubOptimizer returns a fixed candidate set or error.
type stubOptimizer struct {
	candidates []solution.Candidate
	err        error
	gotCons    constraint.Constraints
	calls      int
}

func (s *stubOptimizer) Optimize(_ context.Context, cons constraint.Constraints) ([]solution.Candidate, error) {
	s.calls++
	s.gotCons = cons
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

// stubRecorder captures recorded runs in memory.
type stubRecorder struct {
	runs []history.RunRecord
	err  error
}

func (s *stubRecorder) RecordRun(minStrength, maxCost float64, count int, d time.Duration) (history.RunRecord, error) {
	if s.err != nil {
		return history.RunRecord{}, s.err
	}
	rec := history.RunRecord{
		RunID:         "run-1",
		MinStrength:   minStrength,
		MaxCost:       maxCost,
		SolutionCount: count,
		Duration:      d,
	}
	s.runs = append(s.runs, rec)
	return rec, nil
}

func (s *stubRecorder) ListRuns(int) ([]history.RunRecord, error) {
	return s.runs, nil
}

func candidates(n int) []solution.Candidate {
	out := make([]solution.Candidate, n)
	for i := range out {
		out[i] = solution.Candidate{
			Composition: []float64{0.5, 0.1, 0.1, 0.1, 0.1, 0.1},
			Metrics:     solution.Metrics{Strength: 600 + float64(i)*10, Cost: 300 + float64(i)*5},
		}
	}
	return out
}

func newTestService(opt Optimizer, rec RunRecorder) *Service {
	return NewService(
		constraint.NewModel(),
		solution.NewStore(),
		opt,
		rec,
		prometheus.NewMetrics(),
		logging.NewNopLogger(),
	)
}

func TestRunOptimizationReplacesSetAndResetsSelection(t *testing.T) {
	opt := &stubOptimizer{candidates: candidates(3)}
	svc := newTestService(opt, nil)

	// Move the selection off zero first to prove the reset.
	svc.store.Replace(candidates(2))
	if err := svc.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}

	res, err := svc.RunOptimization(context.Background())
	if err != nil {
		t.Fatalf("run optimization: %v", err)
	}
	if res.SolutionCount != 3 {
		t.Errorf("solution count = %d, want 3", res.SolutionCount)
	}

	snap := svc.Snapshot()
	if len(snap.Candidates) != 3 || snap.Selection != 0 {
		t.Errorf("snapshot = %d candidates selection %d, want 3 / 0", len(snap.Candidates), snap.Selection)
	}
}

func TestRunOptimizationSendsCurrentConstraints(t *testing.T) {
	opt := &stubOptimizer{candidates: candidates(1)}
	svc := newTestService(opt, nil)

	if _, err := svc.UpdateConstraint(constraint.FieldMinStrength, 750); err != nil {
		t.Fatalf("update constraint: %v", err)
	}
	if _, err := svc.RunOptimization(context.Background()); err != nil {
		t.Fatalf("run optimization: %v", err)
	}
	if opt.gotCons.MinStrength != 750 || opt.gotCons.MaxCost != constraint.DefaultMaxCost {
		t.Errorf("optimizer saw %+v", opt.gotCons)
	}
}

func TestRunOptimizationFailureKeepsPriorSet(t *testing.T) {
	opt := &stubOptimizer{candidates: candidates(2)}
	svc := newTestService(opt, nil)

	if _, err := svc.RunOptimization(context.Background()); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	opt.err = errors.New(errors.CodeOptimizerNoConvergence, "no convergence")
	if _, err := svc.RunOptimization(context.Background()); err == nil {
		t.Fatal("expected error from failed run")
	}

	snap := svc.Snapshot()
	if len(snap.Candidates) != 2 {
		t.Errorf("prior set lost after failed run: %d candidates", len(snap.Candidates))
	}
}

func TestRunOptimizationEmptySetClearsSelection(t *testing.T) {
	opt := &stubOptimizer{candidates: []solution.Candidate{}}
	svc := newTestService(opt, nil)

	if _, err := svc.RunOptimization(context.Background()); err != nil {
		t.Fatalf("run optimization: %v", err)
	}
	if snap := svc.Snapshot(); snap.Selection != solution.NoSelection {
		t.Errorf("selection = %d, want %d", snap.Selection, solution.NoSelection)
	}
	if _, err := svc.Active(); !errors.IsCode(err, errors.CodeNoActiveSolution) {
		t.Errorf("active on empty set: %v", err)
	}
}

func TestRunOptimizationRecordsHistory(t *testing.T) {
	rec := &stubRecorder{}
	svc := newTestService(&stubOptimizer{candidates: candidates(4)}, rec)

	res, err := svc.RunOptimization(context.Background())
	if err != nil {
		t.Fatalf("run optimization: %v", err)
	}
	if res.RunID != "run-1" {
		t.Errorf("run id = %q", res.RunID)
	}
	if len(rec.runs) != 1 || rec.runs[0].SolutionCount != 4 {
		t.Errorf("recorded runs = %+v", rec.runs)
	}

	runs, err := svc.History(10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("history length = %d", len(runs))
	}
}

func TestRunOptimizationRecorderFailureIsNotFatal(t *testing.T) {
	rec := &stubRecorder{err: errors.New(errors.CodeHistoryWriteFailed, "disk full")}
	svc := newTestService(&stubOptimizer{candidates: candidates(1)}, rec)

	res, err := svc.RunOptimization(context.Background())
	if err != nil {
		t.Fatalf("run optimization: %v", err)
	}
	if res.RunID != "" {
		t.Errorf("run id = %q, want empty on recorder failure", res.RunID)
	}
	if res.SolutionCount != 1 {
		t.Errorf("solution count = %d", res.SolutionCount)
	}
}

func TestSelectOutOfRangeIsNoOp(t *testing.T) {
	svc := newTestService(&stubOptimizer{candidates: candidates(2)}, nil)
	if _, err := svc.RunOptimization(context.Background()); err != nil {
		t.Fatalf("run optimization: %v", err)
	}

	if err := svc.Select(5); !errors.IsCode(err, errors.CodeSelectionOutOfRange) {
		t.Fatalf("select(5): %v", err)
	}
	if snap := svc.Snapshot(); snap.Selection != 0 {
		t.Errorf("selection moved to %d after rejected select", snap.Selection)
	}
}

func TestInsightForActiveCandidate(t *testing.T) {
	cands := candidates(1)
	cands[0].Composition = []float64{0.80, 0.10, 0.00, 0.05, 0.00, 0.05}
	svc := newTestService(&stubOptimizer{candidates: cands}, nil)
	if _, err := svc.RunOptimization(context.Background()); err != nil {
		t.Fatalf("run optimization: %v", err)
	}

	ins, ok := svc.Insight()
	if !ok {
		t.Fatal("expected insight for active candidate")
	}
	if ins.Dominant.Key != "c" {
		t.Errorf("dominant = %q, want carbon", ins.Dominant.Key)
	}
}

func TestInsightWithoutActiveCandidate(t *testing.T) {
	svc := newTestService(&stubOptimizer{}, nil)
	if _, ok := svc.Insight(); ok {
		t.Error("insight reported for empty set")
	}
}

func TestProjectionsFollowStore(t *testing.T) {
	svc := newTestService(&stubOptimizer{candidates: candidates(3)}, nil)
	if _, err := svc.RunOptimization(context.Background()); err != nil {
		t.Fatalf("run optimization: %v", err)
	}

	if pts := svc.Scatter(); len(pts) != 3 {
		t.Errorf("scatter length = %d", len(pts))
	}
	if axes := svc.Radar(); len(axes) != catalog.Size {
		t.Errorf("radar length = %d", len(axes))
	}
}

func TestRadarEmptyWithoutActive(t *testing.T) {
	svc := newTestService(&stubOptimizer{}, nil)
	if axes := svc.Radar(); len(axes) != 0 {
		t.Errorf("radar on empty set has %d axes", len(axes))
	}
}

func TestHistoryDisabled(t *testing.T) {
	svc := newTestService(&stubOptimizer{}, nil)
	runs, err := svc.History(10)
	if err != nil || runs != nil {
		t.Errorf("disabled history = %v, %v", runs, err)
	}
}

// Package exploration provides the application-level service that ties the
// constraint model, the external optimizer and the solution store together.
// HTTP handlers and the CLI talk to this service, never to the domain
// packages directly.
package exploration

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/AlloyFrontier/internal/analytics"
	"github.com/turtacn/AlloyFrontier/internal/domain/catalog"
	"github.com/turtacn/AlloyFrontier/internal/domain/constraint"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/storage/history"
	"github.com/turtacn/AlloyFrontier/internal/projection"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// Optimizer resolves a constraint pair into a ranked candidate sequence.
type Optimizer interface {
	Optimize(ctx context.Context, cons constraint.Constraints) ([]solution.Candidate, error)
}

// RunRecorder persists completed optimization runs.
type RunRecorder interface {
	RecordRun(minStrength, maxCost float64, solutionCount int, duration time.Duration) (history.RunRecord, error)
	ListRuns(limit int) ([]history.RunRecord, error)
}

// RunResult reports a completed optimization.
type RunResult struct {
	RunID         string
	SolutionCount int
	Elapsed       time.Duration
}

// Snapshot is a consistent view of the candidate set and selection.
type Snapshot struct {
	Candidates []solution.Candidate
	Selection  int
}

// Service orchestrates the exploration session.
type Service struct {
	constraints *constraint.Model
	store       *solution.Store
	optimizer   Optimizer
	recorder    RunRecorder // nil disables run history
	metrics     *prometheus.Metrics
	logger      logging.Logger

	mu        sync.Mutex
	lastRunID string
}

// NewService wires the exploration service.  recorder may be nil when run
// history is disabled.
func NewService(
	cons *constraint.Model,
	store *solution.Store,
	opt Optimizer,
	recorder RunRecorder,
	metrics *prometheus.Metrics,
	logger logging.Logger,
) *Service {
	return &Service{
		constraints: cons,
		store:       store,
		optimizer:   opt,
		recorder:    recorder,
		metrics:     metrics,
		logger:      logger.Named("exploration"),
	}
}

// Constraints returns the current constraint pair.
func (s *Service) Constraints() constraint.Constraints {
	return s.constraints.Get()
}

// UpdateConstraint writes one constraint field.  Out-of-range values are
// clamped; only an unknown field name is an error.  The new pair takes
// effect on the next optimization run, never retroactively.
func (s *Service) UpdateConstraint(field constraint.Field, value float64) (constraint.Constraints, error) {
	updated, err := s.constraints.Set(field, value)
	if err != nil {
		return constraint.Constraints{}, err
	}
	s.logger.Debug("constraint updated",
		logging.String("field", string(field)),
		logging.Float64("value", value))
	return updated, nil
}

// RunOptimization submits the current constraints to the optimizer and, on
// success, atomically replaces the candidate set.  The selection resets to
// the top-ranked candidate.  When runs overlap, the one whose response
// resolves last wins; the store itself is never left inconsistent.
func (s *Service) RunOptimization(ctx context.Context) (RunResult, error) {
	cons := s.constraints.Get()
	started := time.Now()

	candidates, err := s.optimizer.Optimize(ctx, cons)
	elapsed := time.Since(started)
	if err != nil {
		outcome := prometheus.OutcomeError
		if errors.IsCode(err, errors.CodeOptimizerNoConvergence) {
			outcome = prometheus.OutcomeNoConvergence
		}
		s.metrics.RecordOptimizerCall(outcome, elapsed)
		s.logger.Warn("optimization failed",
			logging.Float64("min_strength", cons.MinStrength),
			logging.Float64("max_cost", cons.MaxCost),
			logging.Err(err))
		return RunResult{}, err
	}

	s.store.Replace(candidates)
	s.metrics.RecordOptimizerCall(prometheus.OutcomeSuccess, elapsed)
	s.metrics.SolutionSetSize.Set(float64(len(candidates)))

	result := RunResult{SolutionCount: len(candidates), Elapsed: elapsed}
	if s.recorder != nil {
		rec, recErr := s.recorder.RecordRun(cons.MinStrength, cons.MaxCost, len(candidates), elapsed)
		if recErr != nil {
			// History is advisory; the run itself succeeded.
			s.logger.Error("failed to record optimization run", logging.Err(recErr))
		} else {
			result.RunID = rec.RunID
			s.mu.Lock()
			s.lastRunID = rec.RunID
			s.mu.Unlock()
		}
	}

	s.logger.Info("optimization completed",
		logging.String("run_id", result.RunID),
		logging.Int("solutions", len(candidates)),
		logging.Duration("elapsed", elapsed))
	return result, nil
}

// LastRunID returns the ID of the most recent recorded run, or empty.
func (s *Service) LastRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunID
}

// Snapshot returns the candidate set and selection observed atomically.
func (s *Service) Snapshot() Snapshot {
	candidates, selection := s.store.Snapshot()
	return Snapshot{Candidates: candidates, Selection: selection}
}

// Select moves the selection to index.  Out-of-range indices leave the
// selection untouched and return a typed error.
func (s *Service) Select(index int) error {
	if err := s.store.Select(index); err != nil {
		s.metrics.RecordSelection(prometheus.OutcomeOutOfRange)
		return err
	}
	s.metrics.RecordSelection(prometheus.OutcomeOK)
	return nil
}

// Active returns the currently selected candidate, or a typed error when the
// set is empty.
func (s *Service) Active() (solution.Candidate, error) {
	cand, ok := s.store.Active()
	if !ok {
		return solution.Candidate{}, errors.New(errors.CodeNoActiveSolution, "no active solution")
	}
	return cand, nil
}

// Insight derives the narrative and dominant driver for the active
// candidate.  ok is false when there is no active candidate or its
// composition does not align with the catalog.
func (s *Service) Insight() (analytics.Insight, bool) {
	cand, ok := s.store.Active()
	if !ok {
		return analytics.Insight{}, false
	}
	return analytics.ComputeInsight(cand, catalog.Catalog())
}

// Scatter projects the current set onto strength/cost points, in ranking
// order.
func (s *Service) Scatter() []projection.Point {
	candidates, _ := s.store.Snapshot()
	return projection.Scatter(candidates)
}

// Radar projects the active candidate's composition onto catalog axes.
// Empty when there is no active candidate.
func (s *Service) Radar() []projection.Axis {
	cand, ok := s.store.Active()
	if !ok {
		return nil
	}
	return projection.Radar(cand, catalog.Catalog())
}

// Elements returns the fixed element catalog.
func (s *Service) Elements() []catalog.Element {
	return catalog.Catalog()
}

// History lists the most recent optimization runs, newest first.  Empty when
// run history is disabled.
func (s *Service) History(limit int) ([]history.RunRecord, error) {
	if s.recorder == nil {
		return nil, nil
	}
	return s.recorder.ListRuns(limit)
}

package solution

import (
	"fmt"
	"sync"

	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// NoSelection is the selection value when the candidate set is empty.
const NoSelection = -1

// Store owns the candidate set and the selection.  A replace is atomic:
// no reader ever observes a set and a selection that are mutually
// inconsistent.  The store is the only shared mutable state in the system.
type Store struct {
	mu         sync.RWMutex
	candidates []Candidate
	selection  int
}

// NewStore returns an empty Store with no selection.
func NewStore() *Store {
	return &Store{selection: NoSelection}
}

// Replace atomically installs the new candidate set, resetting the selection
// to 0 for a non-empty set and to empty otherwise.  The set is installed
// wholesale; it is never patched incrementally.
func (s *Store) Replace(candidates []Candidate) {
	cp := make([]Candidate, len(candidates))
	copy(cp, candidates)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = cp
	if len(cp) > 0 {
		s.selection = 0
	} else {
		s.selection = NoSelection
	}
}

// Select updates the selection.  An index outside [0, len) is rejected as a
// no-op: the prior selection is kept and a typed error reports the failure.
func (s *Store) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.candidates) {
		return errors.New(errors.CodeSelectionOutOfRange, "selection index out of range").
			WithDetail(fmt.Sprintf("index=%d len=%d", index, len(s.candidates)))
	}
	s.selection = index
	return nil
}

// Active returns the candidate at the current selection.  ok is false when
// the set is empty.
func (s *Store) Active() (Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == NoSelection {
		return Candidate{}, false
	}
	return s.candidates[s.selection], true
}

// Selection returns the current selection index, or NoSelection.
func (s *Store) Selection() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Snapshot returns a copy of the candidate set together with the selection
// observed at the same instant.  Consumers derive projections from the
// snapshot so a concurrent Replace cannot tear their view.
func (s *Store) Snapshot() ([]Candidate, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]Candidate, len(s.candidates))
	copy(cp, s.candidates)
	return cp, s.selection
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates)
}

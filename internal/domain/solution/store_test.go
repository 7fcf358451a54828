package solution

import (
	"sync"
	"testing"

	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

func candidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{
			Composition: []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
			Metrics:     Metrics{Strength: 600 + float64(i), Cost: 300 + float64(i)},
		}
	}
	return out
}

func TestReplaceNonEmptyResetsSelectionToZero(t *testing.T) {
	s := NewStore()
	s.Replace(candidates(5))

	if got := s.Selection(); got != 0 {
		t.Errorf("selection after non-empty replace = %d, want 0", got)
	}
	active, ok := s.Active()
	if !ok {
		t.Fatal("expected an active candidate")
	}
	if active.Metrics.Strength != 600 {
		t.Errorf("active is not the first candidate: %+v", active.Metrics)
	}
}

func TestReplaceEmptyClearsSelection(t *testing.T) {
	s := NewStore()
	s.Replace(candidates(3))
	s.Replace(nil)

	if got := s.Selection(); got != NoSelection {
		t.Errorf("selection after empty replace = %d, want NoSelection", got)
	}
	if _, ok := s.Active(); ok {
		t.Error("Active must report no candidate for an empty set")
	}
}

func TestSelectValid(t *testing.T) {
	s := NewStore()
	s.Replace(candidates(4))

	if err := s.Select(2); err != nil {
		t.Fatalf("Select(2) failed: %v", err)
	}
	if got := s.Selection(); got != 2 {
		t.Errorf("selection = %d, want 2", got)
	}
}

func TestSelectOutOfRangeIsNoOp(t *testing.T) {
	s := NewStore()
	s.Replace(candidates(3))
	if err := s.Select(1); err != nil {
		t.Fatal(err)
	}

	for _, idx := range []int{-1, 3, 99} {
		err := s.Select(idx)
		if err == nil {
			t.Fatalf("Select(%d) must fail", idx)
		}
		if !errors.IsCode(err, errors.CodeSelectionOutOfRange) {
			t.Errorf("Select(%d) error code = %s, want %s", idx, errors.GetCode(err), errors.CodeSelectionOutOfRange)
		}
		if got := s.Selection(); got != 1 {
			t.Errorf("failed Select(%d) changed selection to %d", idx, got)
		}
	}
}

func TestSelectOnEmptyStore(t *testing.T) {
	s := NewStore()
	if err := s.Select(0); err == nil {
		t.Error("Select(0) on empty store must fail")
	}
}

func TestSnapshotConsistency(t *testing.T) {
	s := NewStore()
	s.Replace(candidates(2))

	set, sel := s.Snapshot()
	if len(set) != 2 || sel != 0 {
		t.Errorf("snapshot = (len %d, sel %d), want (2, 0)", len(set), sel)
	}

	// Mutating the snapshot must not affect the store.
	set[0].Metrics.Strength = 9999
	active, _ := s.Active()
	if active.Metrics.Strength == 9999 {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	s := NewStore()
	in := candidates(1)
	s.Replace(in)
	in[0].Metrics.Cost = -1

	active, _ := s.Active()
	if active.Metrics.Cost == -1 {
		t.Error("caller mutation of the input slice leaked into the store")
	}
}

func TestBatchNumber(t *testing.T) {
	if BatchNumber(0) != 100 || BatchNumber(49) != 149 {
		t.Error("batch number must be position + 100")
	}
}

// Replace and readers race freely; the mutex must keep every observation
// internally consistent (selection always valid for the observed set).
func TestConcurrentReplaceAndRead(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.Replace(candidates(3))
			} else {
				s.Replace(nil)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			set, sel := s.Snapshot()
			if sel == NoSelection {
				if len(set) != 0 {
					t.Error("empty selection observed with non-empty set")
					return
				}
			} else if sel < 0 || sel >= len(set) {
				t.Errorf("selection %d invalid for set of %d", sel, len(set))
				return
			}
		}
	}()
	wg.Wait()
}

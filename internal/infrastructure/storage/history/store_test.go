package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := newTestStore(t)

	first, err := s.RecordRun(600, 400, 12, 2300*time.Millisecond)
	require.NoError(t, err)
	assert.NotEmpty(t, first.RunID)
	assert.False(t, first.CreatedAt.IsZero())

	time.Sleep(5 * time.Millisecond) // distinct created_at ordering
	second, err := s.RecordRun(750, 380, 8, 1800*time.Millisecond)
	require.NoError(t, err)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.RunID, runs[0].RunID)
	assert.Equal(t, first.RunID, runs[1].RunID)
	assert.Equal(t, 750.0, runs[0].MinStrength)
	assert.Equal(t, 380.0, runs[0].MaxCost)
	assert.Equal(t, 8, runs[0].SolutionCount)
	assert.Equal(t, 1800*time.Millisecond, runs[0].Duration)
}

func TestListRunsHonorsLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.RecordRun(600, 400, i, time.Second)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRecordAndListArtifacts(t *testing.T) {
	s := newTestStore(t)

	run, err := s.RecordRun(600, 400, 4, time.Second)
	require.NoError(t, err)

	art, err := s.RecordArtifact(run.RunID, 102, "AlloyFrontier_Report_Batch_102.pdf", 48120)
	require.NoError(t, err)
	assert.NotEmpty(t, art.ArtifactID)

	got, err := s.ListArtifacts(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, run.RunID, got[0].RunID)
	assert.Equal(t, 102, got[0].BatchNumber)
	assert.Equal(t, "AlloyFrontier_Report_Batch_102.pdf", got[0].Filename)
	assert.Equal(t, int64(48120), got[0].SizeBytes)
}

func TestRecordArtifactWithoutRun(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecordArtifact("", 100, "AlloyFrontier_Report_Batch_100.pdf", 1024)
	require.NoError(t, err)

	got, err := s.ListArtifacts(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].RunID)
}

func TestEmptyListsAreNotErrors(t *testing.T) {
	s := newTestStore(t)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	arts, err := s.ListArtifacts(10)
	require.NoError(t, err)
	assert.Empty(t, arts)
}

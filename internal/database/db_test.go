package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "results.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndSummary(t *testing.T) {
	db := openTestDB(t)
	repo := NewFrameResultRepository(db.Gorm())

	results := []FrameResult{
		{Campaign: "t1", Frame: 0, SlotBytes: 80, TrueMode: 4, DetectedMode: 4, BFI: 0, DataIntact: true},
		{Campaign: "t1", Frame: 1, SlotBytes: 80, TrueMode: 4, DetectedMode: 4, BFI: 0, DataIntact: true},
		{Campaign: "t1", Frame: 2, SlotBytes: 80, TrueMode: 4, DetectedMode: -1, BFI: 1},
		{Campaign: "t1", Frame: 3, SlotBytes: 80, TrueMode: 4, DetectedMode: 4, BFI: 2, DataIntact: false},
		{Campaign: "other", Frame: 0, SlotBytes: 40, TrueMode: 2, DetectedMode: 2, BFI: 0, DataIntact: true},
	}
	require.NoError(t, repo.InsertBatch(results))

	s, err := repo.Summary("t1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.Frames)
	assert.Equal(t, int64(2), s.Clean)
	assert.Equal(t, int64(1), s.Fatal)
	assert.Equal(t, int64(1), s.Partial)
	assert.Equal(t, int64(2), s.Intact)

	n, err := repo.CountByBFI("t1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInsertSingle(t *testing.T) {
	db := openTestDB(t)
	repo := NewFrameResultRepository(db.Gorm())

	require.Error(t, repo.Insert(nil))
	res := &FrameResult{Campaign: "single", SlotBytes: 40, TrueMode: 2, DetectedMode: 2}
	require.NoError(t, repo.Insert(res))
	assert.NotZero(t, res.ID)
	assert.False(t, res.CreatedAt.IsZero())
	assert.False(t, res.Degraded())
}

func TestDeleteCampaign(t *testing.T) {
	db := openTestDB(t)
	repo := NewFrameResultRepository(db.Gorm())
	require.NoError(t, repo.InsertBatch([]FrameResult{
		{Campaign: "gone", Frame: 0, BFI: 0},
		{Campaign: "kept", Frame: 0, BFI: 0},
	}))
	require.NoError(t, repo.DeleteCampaign("gone"))
	s, err := repo.Summary("gone")
	require.NoError(t, err)
	assert.Zero(t, s.Frames)
	s, err = repo.Summary("kept")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Frames)
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "rounds.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func record(score int, playedAt time.Time) RoundRecord {
	return RoundRecord{
		PlayedAt: playedAt,
		Lexicon:  "SAMPLE",
		Letters:  "aelpst",
		Score:    score,
		MaxScore: 420,
		Found:    score / 10,
		Total:    42,
		Seconds:  95.5,
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	_, path := testStore(t)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestInsertAndRecent(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.InsertRound(ctx, record(50, now.Add(-2*time.Hour))))
	require.NoError(t, s.InsertRound(ctx, record(120, now.Add(-time.Hour))))
	require.NoError(t, s.InsertRound(ctx, record(80, now)))

	recs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 80, recs[0].Score)
	assert.Equal(t, 120, recs[1].Score)
	assert.True(t, recs[0].PlayedAt.Equal(now))

	first := recs[0]
	assert.Equal(t, "SAMPLE", first.Lexicon)
	assert.Equal(t, "aelpst", first.Letters)
	assert.Equal(t, 420, first.MaxScore)
	assert.Equal(t, 8, first.Found)
	assert.Equal(t, 42, first.Total)
	assert.Equal(t, 95.5, first.Seconds)
	assert.NotZero(t, first.ID)
}

func TestBest(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.InsertRound(ctx, record(50, now.Add(-3*time.Hour))))
	require.NoError(t, s.InsertRound(ctx, record(120, now.Add(-2*time.Hour))))
	// Tied scores; the newer round should rank first.
	require.NoError(t, s.InsertRound(ctx, record(80, now.Add(-time.Hour))))
	require.NoError(t, s.InsertRound(ctx, record(80, now)))

	recs, err := s.Best(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 120, recs[0].Score)
	assert.Equal(t, 80, recs[1].Score)
	assert.True(t, recs[1].PlayedAt.Equal(now))
	assert.Equal(t, 80, recs[2].Score)
}

func TestZeroPlayedAtStamped(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertRound(ctx, RoundRecord{Lexicon: "SAMPLE", Letters: "ab"}))
	recs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].PlayedAt.IsZero())
	assert.WithinDuration(t, time.Now(), recs[0].PlayedAt, time.Minute)
}

func TestReopen(t *testing.T) {
	s, path := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertRound(ctx, record(70, time.Now())))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	recs, err := s2.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestDefaultLimit(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		require.NoError(t, s.InsertRound(ctx, record(10*i, time.Now().Add(time.Duration(i)*time.Second))))
	}
	recs, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, defaultLimit)
}

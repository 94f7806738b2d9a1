package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.Save(ctx, "k", payload{Name: "x", Count: 3}))

	var got payload
	ok, err := s.LoadInto(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestLoad_MissingKey(t *testing.T) {
	s := openTestStore(t)

	raw, ok, err := s.Load(t.Context(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestSave_Overwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.Save(ctx, "k", 1))
	require.NoError(t, s.Save(ctx, "k", 2))

	var got int
	ok, err := s.LoadInto(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.Save(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestStatsHelpers(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	// First-time user: zero record, no error.
	st, err := s.LoadStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.TotalTests)

	st = stats.UserStats{
		TotalTests:     3,
		AverageScore:   77,
		Streak:         2,
		LastTestDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		TotalTimeTaken: 10 * time.Minute,
		TestsThisWeek:  3,
		Achievements:   []stats.Achievement{{BadgeID: "perfect_score", Progress: 100}},
	}
	require.NoError(t, s.SaveStats(ctx, st))

	got, err := s.LoadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.TotalTests, got.TotalTests)
	assert.Equal(t, st.AverageScore, got.AverageScore)
	assert.True(t, st.LastTestDate.Equal(got.LastTestDate))
	assert.Equal(t, st.TotalTimeTaken, got.TotalTimeTaken)
	require.Len(t, got.Achievements, 1)
	assert.Equal(t, "perfect_score", got.Achievements[0].BadgeID)
}

func TestCredentialsHelpers(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	_, ok, err := s.LoadCredentials(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := Credentials{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.SaveCredentials(ctx, want))

	got, ok, err := s.LoadCredentials(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestProgressHelpers(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	_, ok, err := s.LoadProgress(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	questions := []aiken.Question{
		{ID: "q1", Text: "x?", Options: []string{"A. 1", "B. 2"}, CorrectAnswer: 0, Difficulty: aiken.TierMedium, TimeLimit: 30, Topic: "general"},
	}
	in := session.Start("Ada", "ada@example.com", stats.UserStats{}, questions, time.Now())
	require.NoError(t, s.Save(ctx, KeyProgress, in))

	got, ok, err := s.LoadProgress(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	require.Len(t, got.Questions, 1)

	// A completed session is not resumable.
	in.RecordTimeout("q1", time.Now())
	in.Complete()
	require.NoError(t, s.Save(ctx, KeyProgress, in))

	_, ok, err = s.LoadProgress(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ClearProgress(ctx))
	_, ok, err = s.LoadProgress(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.Save(ctx, KeyStats, 1))
	require.NoError(t, s.Save(ctx, KeyProgress, 2))
	require.NoError(t, s.Reset(ctx))

	for _, key := range []string{KeyStats, KeyProgress} {
		_, ok, err := s.Load(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

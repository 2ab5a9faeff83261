package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndListTurns(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	require.NoError(t, s.RecordProblem(ctx, "p1", 3))
	require.NoError(t, s.RecordTurn(ctx, Turn{ProblemID: "p1", Turn: 1, Guess: "flame", Remaining: 3}))
	require.NoError(t, s.RecordTurn(ctx, Turn{
		ProblemID: "p1", Turn: 2, Feedback: "a and e are right", Letters: "ggbgb",
		Guess: "crane", Remaining: 1,
	}))

	turns, err := s.Turns(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "flame", turns[0].Guess)
	assert.Equal(t, "crane", turns[1].Guess)
	assert.Equal(t, "ggbgb", turns[1].Letters)
	assert.Equal(t, 1, turns[1].Remaining)
	assert.False(t, turns[1].Reset)
	assert.NotEmpty(t, turns[0].ID)
	assert.False(t, turns[0].CreatedAt.IsZero())

	empty, err := s.Turns(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecordProblemRestartClearsTurns(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	require.NoError(t, s.RecordProblem(ctx, "p1", 3))
	require.NoError(t, s.RecordTurn(ctx, Turn{ProblemID: "p1", Turn: 1, Guess: "flame", Remaining: 3, Reset: true}))
	require.NoError(t, s.RecordProblem(ctx, "p1", 5))

	turns, err := s.Turns(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestTurnRequiresProblem(t *testing.T) {
	s := openTest(t)
	err := s.RecordTurn(context.Background(), Turn{ProblemID: "missing", Turn: 1, Guess: "crane"})
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestTurnsBadTimestamp(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	require.NoError(t, s.RecordProblem(ctx, "p1", 3))
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO turns (id, problem_id, turn, feedback, letters, guess, remaining, reset, created_at)
        VALUES ('t1', 'p1', 1, '', '', 'flame', 3, 0, 'yesterday')`)
	require.NoError(t, err)

	_, err = s.Turns(ctx, "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at")
}

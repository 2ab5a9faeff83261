package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/interpret"
	"github.com/robalobadob/wordle/apps/solver/internal/relation"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func TestSimulateCraneFlameSlate(t *testing.T) {
	table, err := assets.DefaultTable()
	require.NoError(t, err)

	var out bytes.Buffer
	turns, err := simulate(&out, table, []string{"crane", "flame", "slate"}, "crane", 6)
	require.NoError(t, err)
	assert.Equal(t, 2, turns)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "flame  ggbgb  (3 candidates)")
	assert.Contains(t, lines[1], "crane  bbbbb  (1 candidates)")
}

func TestSimulateWholeVocabulary(t *testing.T) {
	table, err := assets.DefaultTable()
	require.NoError(t, err)
	for _, secret := range []string{"crane", "zebra"} {
		var out bytes.Buffer
		turns, err := simulate(&out, table, nil, secret, 10)
		if secret == "zebra" {
			assert.ErrorIs(t, err, solver.ErrUnknownWord)
			continue
		}
		require.NoError(t, err, out.String())
		assert.LessOrEqual(t, turns, 6)
	}
}

func TestPrecomputeCommand(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("words.txt", []byte("slate\ncrane\nflame\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"precompute", "--out", "artifact", "words.txt"})
	require.NoError(t, cmd.Execute())

	table, err := relation.Load(filepath.Join(".", "artifact"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "flame", "slate"}, table.Words())
}

func TestTokenCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SOLVER_JWT_SECRET", "s3cret")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "client-1"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out.String()), "."))
}

func TestServeStopsOnCancel(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	cfg := config.Config{Port: "0", HistoryDSN: dsn, LLMModel: "gpt-4o-mini"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	// the deferred close ran, so the database reopens cleanly
	st, err := history.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestNewInterpreter(t *testing.T) {
	interp, llm := newInterpreter(config.Config{})
	assert.Equal(t, interpret.Literal{}, interp)
	assert.Nil(t, llm)

	interp, llm = newInterpreter(config.Config{LLMAPIKey: "k", LLMModel: "gpt-4o-mini"})
	require.NotNil(t, llm)
	assert.IsType(t, interpret.Chain{}, interp)
	assert.Zero(t, llm.Calls())
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

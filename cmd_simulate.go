package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/relation"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func newSimulateCommand(cfg *config.Config) *cobra.Command {
	var pool []string
	var maxTurns int
	cmd := &cobra.Command{
		Use:   "simulate <secret>",
		Short: "Play one game against a known secret and print each turn",
		Long: `Run the solver against a secret, scoring guesses locally instead of asking an
interpreter. The pool defaults to the whole artifact vocabulary.

Example:
  wordle-solver simulate crane --pool crane,flame,slate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(*cfg)
			if err != nil {
				return fmt.Errorf("load artifact: %w", err)
			}
			_, err = simulate(cmd.OutOrStdout(), table, pool, args[0], maxTurns)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&pool, "pool", nil, "candidate words (default: whole vocabulary)")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 20, "give up after this many guesses")
	return cmd
}

// simulate plays secret to completion and returns the number of guesses.
func simulate(w io.Writer, table *relation.Table, pool []string, secret string, maxTurns int) (int, error) {
	if len(pool) == 0 {
		pool = table.Words()
	}
	eng, err := solver.Start(table, pool)
	if err != nil {
		return 0, err
	}
	secret = strings.ToLower(strings.TrimSpace(secret))
	if _, ok := table.Index(secret); !ok {
		return 0, fmt.Errorf("%w: secret %q", solver.ErrUnknownWord, secret)
	}

	for turn := 1; turn <= maxTurns; turn++ {
		left := eng.RemainingCount()
		guess := eng.ChooseGuess()
		p := feedback.Score(guess, secret)
		fmt.Fprintf(w, "%2d  %s  %s  (%d candidates)\n", turn, guess, p, left)
		if p.Solved() {
			return turn, nil
		}
		if err := eng.Prune(feedback.Encode(p)); err != nil {
			return turn, err
		}
	}
	return maxTurns, fmt.Errorf("not solved in %d turns", maxTurns)
}

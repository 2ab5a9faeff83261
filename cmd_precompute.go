package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/relation"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newPrecomputeCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "precompute <wordlist>",
		Short: "Build the feedback relation artifact from a word list",
		Long: `Score every word of the list against every other and write wordlist.txt and
table.bin into the output directory. Run once offline; the service only loads the result.

Example:
  wordle-solver precompute --out ./data/artifact ./words.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := words.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read word list: %w", err)
			}
			start := time.Now()
			table, err := relation.Build(cmd.Context(), list)
			if err != nil {
				return err
			}
			if err := table.Write(out); err != nil {
				return err
			}
			log.Info().
				Int("words", table.Len()).
				Str("out", out).
				Dur("took", time.Since(start)).
				Msg("artifact written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "./data/artifact", "output directory")
	return cmd
}

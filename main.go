package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI: serve, precompute, simulate, token.
func newRootCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Entropy-maximizing Wordle guess service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			} else {
				log.Warn().Str("level", cfg.LogLevel).Msg("unknown LOG_LEVEL; keeping default")
			}
			return nil
		},
	}

	cmd.AddCommand(newServeCommand(&cfg))
	cmd.AddCommand(newPrecomputeCommand())
	cmd.AddCommand(newSimulateCommand(&cfg))
	cmd.AddCommand(newTokenCommand(&cfg))
	return cmd
}

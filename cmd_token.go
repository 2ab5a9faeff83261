package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
)

func newTokenCommand(cfg *config.Config) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <client-id>",
		Short: "Mint a bearer token for the solver API (uses SOLVER_JWT_SECRET)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JWTSecret == "" {
				return errors.New("SOLVER_JWT_SECRET is not set")
			}
			tok, exp, err := httpserver.SignToken(cfg.JWTSecret, args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 14*24*time.Hour, "token lifetime")
	return cmd
}

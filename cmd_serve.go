package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/interpret"
	"github.com/robalobadob/wordle/apps/solver/internal/relation"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solver service",
		Long: `Load the feedback relation artifact and serve POST /start_problem and POST /guess.

The artifact comes from ARTIFACT_DIR, or the embedded default when unset.
Free-text feedback is sent to an OpenAI-compatible model when LLM_API_KEY is set;
otherwise only literal b/y/g feedback is understood.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfg)
		},
	}
}

// runServe blocks until ctx is done (SIGINT/SIGTERM from main), then drains
// requests and closes the history database.
func runServe(ctx context.Context, cfg config.Config) error {
	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}
	log.Info().Int("words", table.Len()).Str("dir", cfg.ArtifactDir).Msg("artifact loaded")

	var rec session.Recorder
	if cfg.HistoryEnabled() {
		st, err := history.Open(cfg.HistoryDSN)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()
		rec = st
	}

	interp, llm := newInterpreter(cfg)
	svc := session.NewService(table, session.NewMemoryStore(), interp, rec)
	srv := httpserver.New(svc, httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		JWTSecret:    cfg.JWTSecret,
	})
	log.Info().Str("port", cfg.Port).Bool("auth", cfg.JWTSecret != "").Msg("starting solver")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		return err
	}
	ev := log.Info()
	if llm != nil {
		ev = ev.Int64("llmCalls", llm.Calls())
	}
	ev.Msg("solver stopped")
	return nil
}

// loadTable reads the artifact directory, falling back to the embedded default.
func loadTable(cfg config.Config) (*relation.Table, error) {
	if cfg.ArtifactDir == "" {
		return assets.DefaultTable()
	}
	return relation.Load(cfg.ArtifactDir)
}

// newInterpreter prefers literal letters and falls back to the model when configured.
// The model interpreter is returned too so its call count can be reported; nil without one.
func newInterpreter(cfg config.Config) (interpret.Interpreter, *interpret.LLM) {
	if cfg.LLMAPIKey == "" {
		return interpret.Literal{}, nil
	}
	llm := interpret.NewLLM(interpret.NewOpenAICompleter(interpret.OpenAIConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	}))
	log.Info().Str("model", cfg.LLMModel).Msg("llm feedback interpreter enabled")
	return interpret.Chain{interpret.Literal{}, llm}, llm
}

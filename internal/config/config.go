// Package config loads process configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the solver reads at startup.
type Config struct {
	Port         string `env:"PORT" envDefault:"8000"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ArtifactDir  string `env:"ARTIFACT_DIR"` // empty: embedded default artifact
	HistoryDSN   string `env:"HISTORY_DSN" envDefault:"./data/history.db"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret    string `env:"SOLVER_JWT_SECRET"` // empty: no auth
	LLMAPIKey    string `env:"LLM_API_KEY"`       // empty: literal feedback only
	LLMBaseURL   string `env:"LLM_BASE_URL"`
	LLMModel     string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// HistoryEnabled reports whether turns are persisted. HISTORY_DSN=off disables it.
func (c Config) HistoryEnabled() bool {
	return c.HistoryDSN != "" && c.HistoryDSN != "off"
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ArtifactDir)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9999")
	t.Setenv("HISTORY_DSN", "off")
	t.Setenv("SOLVER_JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.False(t, cfg.HistoryEnabled())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_MODEL=test-model\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("LLM_MODEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-model", cfg.LLMModel)
}

func TestParseEnvError(t *testing.T) {
	var bad struct {
		N int `env:"SOLVER_TEST_INT"`
	}
	t.Setenv("SOLVER_TEST_INT", "not-an-int")
	err := ParseEnv(&bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
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

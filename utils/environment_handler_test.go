package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks every allowed key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allowedKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadEnvVariables(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "ENV=homolog\nPORT=9090\nMYSQL_URI=user:pass@tcp(localhost:3306)/funnel\nREPORT_CACHE_TTL_MINUTES=5\n")

	cfg, err := LoadEnvVariables(path)
	require.NoError(t, err)
	assert.Equal(t, ENV_HOMOLOG, cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.ReportCacheTTLMinutes)
	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, "9090", os.Getenv(PORT))
}

func TestLoadEnvVariablesProcessEnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(PORT, "7070")
	path := writeEnvFile(t, "ENV=development\nPORT=9090\nMYSQL_URI=dsn\n")

	cfg, err := LoadEnvVariables(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, DEFAULT_REPORT_CACHE_TTL_MINUTES, cfg.ReportCacheTTLMinutes)
}

func TestLoadEnvVariablesRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "ENV=development\nPORT=9090\nMYSQL_URI=dsn\nLARAVEL_API_URL=http://localhost\n")

	_, err := LoadEnvVariables(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LARAVEL_API_URL")
}

func TestLoadEnvVariablesMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadEnvVariables(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestConfigFromEnvValidation(t *testing.T) {
	clearEnv(t)
	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), MYSQL_URI)

	t.Setenv(ENV, "staging")
	t.Setenv(PORT, "8080")
	t.Setenv(MYSQL_URI, "dsn")
	_, err = ConfigFromEnv()
	assert.ErrorContains(t, err, "invalid value for ENV")

	t.Setenv(ENV, ENV_RELEASE)
	t.Setenv(REPORT_CACHE_TTL_MINUTES, "-1")
	_, err = ConfigFromEnv()
	assert.ErrorContains(t, err, REPORT_CACHE_TTL_MINUTES)

	t.Setenv(REPORT_CACHE_TTL_MINUTES, "0")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Zero(t, cfg.ReportCacheTTLMinutes)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pjtries/VeritasAI/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigExpandsAPIKeys(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret-key-123")

	path := writeConfig(t, `
server:
  port: "9001"
providers:
  - type: gemini
    api_key: "${TEST_GEMINI_KEY}"
    model_name: "gemini-2.0-flash-exp"
  - type: groq
    api_key: "plain-key"
database:
  path: "/tmp/test-scans.db"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "/tmp/test-scans.db", cfg.Database.Path)
	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, llm.ProviderGemini, cfg.Providers[0].Type)
	assert.Equal(t, "secret-key-123", cfg.Providers[0].APIKey)
	assert.Equal(t, "plain-key", cfg.Providers[1].APIKey)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
providers: []
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "./data/scans.db", cfg.Database.Path)
	assert.Empty(t, cfg.Providers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

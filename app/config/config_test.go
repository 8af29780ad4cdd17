package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
llm:
  primary:
    kind: openai
    base_url: https://openrouter.ai/api/v1
    token: sk-test
    model: some/model
  fallback:
    kind: ollama
    base_url: http://localhost:11434
    model: llama3.2
`

func TestLoadAppliesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte(validConfig), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2.0, cfg.Assistant.RelevanceThreshold)
	assert.Equal(t, 3, cfg.Assistant.MaxSuggestions)
	assert.Equal(t, 6, cfg.Assistant.ContextTurns)
	assert.Equal(t, 10, cfg.Assistant.SearchWindow)
	assert.Equal(t, 5, cfg.Assistant.InterestWindow)
}

func TestLoadRejectsBadBackendKind(t *testing.T) {
	t.Chdir(t.TempDir())

	bad := `
llm:
  primary:
    kind: carrier-pigeon
    model: some/model
  fallback:
    kind: ollama
    model: llama3.2
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(bad), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}

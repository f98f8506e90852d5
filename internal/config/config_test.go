package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, DefaultConcurrency, cfg.Index.Concurrency)
	assert.Equal(t, DefaultRetries, cfg.Index.Retries)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
provider = "openai"
source = "/docs/corpus.md"
snapshot = "/docs/index.json"
top_k = 3

[embedding]
model = "text-embedding-3-large"
timeout_seconds = 30

[llm]
model = "gpt-4o"

[index]
concurrency = 8
retries = 5
rate_limit = 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "/docs/corpus.md", cfg.Source)
	assert.Equal(t, "/docs/index.json", cfg.Snapshot)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
	assert.Equal(t, 30, cfg.Embedding.TimeoutSeconds)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 8, cfg.Index.Concurrency)
	assert.Equal(t, 5, cfg.Index.Retries)
	assert.InDelta(t, 2.5, cfg.Index.RateLimit, 1e-9)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`top_k = 10`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, DefaultConcurrency, cfg.Index.Concurrency)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`provider = "cohere"`), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestLoad_RejectsInvalidTopK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`top_k = -1`), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_k")
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`provider = [unclosed`), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Provider = ProviderOpenAI
	cfg.TopK = 7
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, loaded.Provider)
	assert.Equal(t, 7, loaded.TopK)
}

func TestAPIKey_Gemini(t *testing.T) {
	t.Setenv(EnvGoogleAPIKey, "gkey")

	cfg := Default()
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "gkey", key)
}

func TestAPIKey_OpenAI(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "okey")

	cfg := Default()
	cfg.Provider = ProviderOpenAI
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "okey", key)
}

func TestAPIKey_MissingNamesVariable(t *testing.T) {
	t.Setenv(EnvGoogleAPIKey, "")

	cfg := Default()
	_, err := cfg.APIKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvGoogleAPIKey)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost:5432/ragdb
  password: secret
  debug: true
embed_llm:
  provider: ollama
  base_url: http://localhost:11434
  model: nomic-embed-text
infer_llm:
  provider: openai
  base_url: https://openrouter.ai/api
  key: Bearer sk-test
  model: qwen/qwen3-14b
rag:
  chunk_size: 800
  chunk_overlap: 100
  top_k: 3
storage:
  chroma_root: /var/lib/rag/chroma
  media_root: /var/lib/rag/media
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/ragdb", cfg.Database.URL)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, "ollama", cfg.EmbedLLM.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedLLM.Model)
	assert.Equal(t, "openai", cfg.InferLLM.Provider)
	assert.Equal(t, 800, cfg.RAG.ChunkSize)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.Equal(t, "/var/lib/rag/chroma", cfg.Storage.ChromaRoot)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost:5432/ragdb
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 200, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.NotEmpty(t, cfg.Storage.ChromaRoot)
	assert.NotEmpty(t, cfg.Storage.MediaRoot)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [not a map")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"project-rag/internal/models"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	InferLLM LLMConfig      `yaml:"infer_llm"`
	RAG      RAGConfig      `yaml:"rag"`
	Storage  StorageConfig  `yaml:"storage"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

// LLMConfig selects a model endpoint. Provider is "ollama" or "openai"
// (anything OpenAI-compatible, e.g. OpenRouter).
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

type StorageConfig struct {
	ChromaRoot string `yaml:"chroma_root"`
	MediaRoot  string `yaml:"media_root"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RAG.ChunkSize <= 0 {
		c.RAG.ChunkSize = models.DefaultChunkSize
	}
	if c.RAG.ChunkOverlap <= 0 {
		c.RAG.ChunkOverlap = models.DefaultChunkOverlap
	}
	if c.RAG.TopK <= 0 {
		c.RAG.TopK = models.DefaultTopK
	}
	if c.Storage.ChromaRoot == "" {
		c.Storage.ChromaRoot = "./chromemdb"
	}
	if c.Storage.MediaRoot == "" {
		c.Storage.MediaRoot = "./media"
	}
}

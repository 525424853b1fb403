package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docrag/internal/adapter/retriever"
)

// Config holds all configuration for the retrieval engine.
type Config struct {
	Index     IndexConfig     `yaml:"index"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// IndexConfig holds index-build configuration.
type IndexConfig struct {
	DocsDir      string   `yaml:"docs_dir"`
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	MaxChars     int      `yaml:"max_chars"`
	OverlapChars int      `yaml:"overlap_chars"`
	IndexPath    string   `yaml:"index_path"`
	CachePath    string   `yaml:"cache_path"`
}

// RetrieveConfig holds ranking configuration. The weight tables are plain
// data so the ranking policy can be tuned and tested apart from the ranking
// algorithm.
type RetrieveConfig struct {
	BaseURL       string                  `yaml:"base_url"`
	SourceWeights retriever.SourceWeights `yaml:"source_weights"`
	HeadingRules  retriever.HeadingRules  `yaml:"heading_rules"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "mock"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	BatchSize int    `yaml:"batch_size"`
	Dimension int    `yaml:"dimension"`
}

// ServerConfig holds HTTP front-end configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration, including the hand-tuned
// authority and intent weight tables for the bundled documentation set.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			DocsDir:      "docs",
			Includes:     []string{"**/*.md"},
			Excludes:     []string{"**/node_modules/**", "**/.git/**", "**/README.md"},
			MaxChars:     1500,
			OverlapChars: 150,
			IndexPath:    filepath.Join(".docrag", "index.json"),
			CachePath:    filepath.Join(".docrag", "embeddings.db"),
		},
		Retrieve: RetrieveConfig{
			BaseURL: "docs://",
			SourceWeights: retriever.SourceWeights{
				"api-spec.md":          1.2,
				"order-lifecycle.md":   1.15,
				"webhooks.md":          1.05,
				"integration-guide.md": 1.0,
				"troubleshooting.md":   0.95,
				"faq.md":               0.9,
			},
			HeadingRules: retriever.HeadingRules{
				{Name: "retries", QueryKeywords: []string{"retry", "retries", "backoff"}, HeadingKeywords: []string{"retry", "backoff"}, Boost: 1.3},
				{Name: "auth", QueryKeywords: []string{"auth", "token", "credential", "api key"}, HeadingKeywords: []string{"auth", "token"}, Boost: 1.3},
				{Name: "rate-limits", QueryKeywords: []string{"rate limit", "throttl", "429"}, HeadingKeywords: []string{"rate", "limit"}, Boost: 1.25},
				{Name: "status", QueryKeywords: []string{"status", "transition", "state"}, HeadingKeywords: []string{"status", "lifecycle", "state"}, Boost: 1.2},
				{Name: "audit", QueryKeywords: []string{"audit", "logging", "trace"}, HeadingKeywords: []string{"audit", "log"}, Boost: 1.2},
				{Name: "events", QueryKeywords: []string{"event", "webhook", "notification"}, HeadingKeywords: []string{"event", "webhook"}, Boost: 1.25},
				{Name: "record", QueryKeywords: []string{"source of truth", "record", "canonical"}, HeadingKeywords: []string{"record", "data"}, Boost: 1.15},
				{Name: "refunds", QueryKeywords: []string{"refund", "permission", "role"}, HeadingKeywords: []string{"refund", "permission"}, Boost: 1.25},
			},
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BatchSize: 100,
			Dimension: 1536,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

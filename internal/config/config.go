package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CorpusConfig locates the precomputed segment artifact.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig configures the remote feature-extraction endpoint.
type EmbeddingConfig struct {
	URL         string `yaml:"url"`
	TokenEnv    string `yaml:"token_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ChatConfig configures the remote chat-completion endpoint and its fixed
// decoding parameters.
type ChatConfig struct {
	URL         string  `yaml:"url"`
	TokenEnv    string  `yaml:"token_env"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// SearchConfig configures retrieval.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Search    SearchConfig    `yaml:"search"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/courseqa/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "courseqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "models/embeddings.json"
	}
	if cfg.Embedding.URL == "" {
		cfg.Embedding.URL = "https://router.huggingface.co/hf-inference/models/BAAI/bge-large-en-v1.5/pipeline/feature-extraction"
	}
	if cfg.Embedding.TokenEnv == "" {
		cfg.Embedding.TokenEnv = "HF_TOKEN"
	}
	if cfg.Embedding.TimeoutSecs == 0 {
		cfg.Embedding.TimeoutSecs = 60
	}
	if cfg.Chat.URL == "" {
		cfg.Chat.URL = "https://router.huggingface.co/v1/chat/completions"
	}
	if cfg.Chat.TokenEnv == "" {
		cfg.Chat.TokenEnv = "HF_TOKEN"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "meta-llama/Llama-3.2-3B-Instruct"
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = 400
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = 0.4
	}
	if cfg.Chat.TopP == 0 {
		cfg.Chat.TopP = 0.9
	}
	if cfg.Chat.TimeoutSecs == 0 {
		cfg.Chat.TimeoutSecs = 120
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 5
	}
}

func (c *AppConfig) validate() error {
	if c.Search.TopK < 1 {
		return fmt.Errorf("search.top_k must be positive, got %d", c.Search.TopK)
	}
	if c.Chat.MaxTokens < 1 {
		return fmt.Errorf("chat.max_tokens must be positive, got %d", c.Chat.MaxTokens)
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("chat.temperature out of range: %v", c.Chat.Temperature)
	}
	if c.Chat.TopP <= 0 || c.Chat.TopP > 1 {
		return fmt.Errorf("chat.top_p out of range: %v", c.Chat.TopP)
	}
	return nil
}

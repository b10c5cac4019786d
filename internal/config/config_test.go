package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.Search.TopK)
	}
	if cfg.Chat.MaxTokens != 400 || cfg.Chat.Temperature != 0.4 || cfg.Chat.TopP != 0.9 {
		t.Errorf("chat decoding defaults = (%d, %v, %v)", cfg.Chat.MaxTokens, cfg.Chat.Temperature, cfg.Chat.TopP)
	}
	if cfg.Embedding.TimeoutSecs != 60 || cfg.Chat.TimeoutSecs != 120 {
		t.Errorf("timeouts = (%d, %d), want (60, 120)", cfg.Embedding.TimeoutSecs, cfg.Chat.TimeoutSecs)
	}
	if cfg.Embedding.TokenEnv != "HF_TOKEN" {
		t.Errorf("TokenEnv = %q, want HF_TOKEN", cfg.Embedding.TokenEnv)
	}
}

func TestLoad_OverridesAndFill(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
search:
  top_k: 3
chat:
  model: some-org/some-model
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Search.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.Search.TopK)
	}
	if cfg.Chat.Model != "some-org/some-model" {
		t.Errorf("Model = %q", cfg.Chat.Model)
	}
	// Unspecified fields still fall back to defaults.
	if cfg.Chat.MaxTokens != 400 {
		t.Errorf("MaxTokens = %d, want 400", cfg.Chat.MaxTokens)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "search: ["},
		{"negative top_k", "search:\n  top_k: -1"},
		{"top_p too large", "chat:\n  top_p: 1.5"},
		{"temperature too large", "chat:\n  temperature: 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("Load() succeeded, want error")
			}
		})
	}
}

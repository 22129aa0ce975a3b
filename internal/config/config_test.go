package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.EmbeddingDimension != 1536 {
		t.Fatalf("expected default dimension 1536, got %d", cfg.OpenAI.EmbeddingDimension)
	}
	if cfg.OpenAI.ChatModel != "gpt-4-1106-preview" {
		t.Fatalf("unexpected default chat model %s", cfg.OpenAI.ChatModel)
	}
	if cfg.Classifier.Strategy != "keyword" {
		t.Fatalf("expected keyword strategy, got %s", cfg.Classifier.Strategy)
	}
	if cfg.Kafka.Topic != "alphora-ticket-events" {
		t.Fatalf("unexpected default topic %s", cfg.Kafka.Topic)
	}
	if cfg.Redis.TTL != 24*time.Hour {
		t.Fatalf("unexpected default TTL %s", cfg.Redis.TTL)
	}
	if cfg.Knowledge.SearchLimit != 5 {
		t.Fatalf("unexpected default search limit %d", cfg.Knowledge.SearchLimit)
	}
	if cfg.Database.Enabled {
		t.Fatal("database should be disabled by default")
	}
}

func TestLoadReadsFileAndKeepsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
classifier:
  strategy: llm
openai:
  embedding_dimension: 64
knowledge:
  seed_on_start: true
  search_limit: 3
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Classifier.Strategy != "llm" {
		t.Fatalf("expected llm strategy, got %s", cfg.Classifier.Strategy)
	}
	if cfg.OpenAI.EmbeddingDimension != 64 {
		t.Fatalf("expected dimension 64, got %d", cfg.OpenAI.EmbeddingDimension)
	}
	if !cfg.Knowledge.SeedOnStart {
		t.Fatal("seed_on_start not read from file")
	}
	if cfg.Knowledge.SearchLimit != 3 {
		t.Fatalf("expected search limit 3, got %d", cfg.Knowledge.SearchLimit)
	}
	// Unset fields still get defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("expected default host, got %s", cfg.Server.Host)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/alphora")

	cfg := Load()

	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("api key override not applied: %q", cfg.OpenAI.APIKey)
	}
	if !cfg.Database.Enabled || cfg.Database.URL != "postgres://localhost/alphora" {
		t.Fatalf("database override not applied: %+v", cfg.Database)
	}
}

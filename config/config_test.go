package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func validConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{APIKey: "sk-test"},
		Memory: MemoryConfig{
			Backend:             "local",
			SimilarityThreshold: 0.7,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid local config", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing openai key", func(t *testing.T) {
		cfg := validConfig()
		cfg.OpenAI.APIKey = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing openai api key")
		}
	})

	t.Run("qdrant backend requires url and collection", func(t *testing.T) {
		cfg := validConfig()
		cfg.Memory.Backend = "qdrant"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for qdrant backend without url")
		}

		cfg.Memory.Qdrant = QdrantConfig{URL: "http://localhost:6333", CollectionName: "mem", VectorSize: 1536}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Memory.Backend = "redis"
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "unknown memory backend") {
			t.Errorf("expected unknown backend error, got %v", err)
		}
	})

	t.Run("threshold out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Memory.SimilarityThreshold = 1.5
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for threshold > 1")
		}
	})

	t.Run("enabled provider without key", func(t *testing.T) {
		cfg := validConfig()
		cfg.LLM.Providers = []ProviderConfig{{Name: "deepseek", Enabled: true}}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for enabled provider without api key")
		}
	})
}

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad(t *testing.T) {
	t.Run("binds llm providers and chain settings", func(t *testing.T) {
		writeConfigFile(t, `
openai:
  api_key: sk-openai
llm:
  fallback_enabled: true
  retry_attempts: 2
  retry_delay: 5s
  max_total_timeout: 45s
  providers:
    - name: openai
      enabled: true
      priority: 1
      api_key: sk-provider
      model: gpt-3.5-turbo
    - name: deepseek
      enabled: true
      priority: 2
      api_key: sk-deepseek
      base_url: https://api.deepseek.com/v1
      model: deepseek-chat
memory:
  backend: local
`)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if !cfg.LLM.FallbackEnabled {
			t.Error("fallback_enabled did not bind")
		}
		if cfg.LLM.RetryAttempts != 2 {
			t.Errorf("retry_attempts = %d, want 2", cfg.LLM.RetryAttempts)
		}
		if cfg.LLM.RetryDelay != "5s" || cfg.LLM.MaxTotalTimeout != "45s" {
			t.Errorf("chain durations did not bind: retry=%q total=%q", cfg.LLM.RetryDelay, cfg.LLM.MaxTotalTimeout)
		}

		if len(cfg.LLM.Providers) != 2 {
			t.Fatalf("expected 2 providers, got %d", len(cfg.LLM.Providers))
		}
		first := cfg.LLM.Providers[0]
		if first.Name != "openai" || !first.Enabled || first.Priority != 1 ||
			first.APIKey != "sk-provider" || first.Model != "gpt-3.5-turbo" {
			t.Errorf("first provider did not bind: %+v", first)
		}
		second := cfg.LLM.Providers[1]
		if second.APIKey != "sk-deepseek" || second.BaseURL != "https://api.deepseek.com/v1" {
			t.Errorf("second provider did not bind: %+v", second)
		}

		// the loaded config must pass startup validation as-is
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate rejected a loaded config: %v", err)
		}
	})

	t.Run("expands provider api_key from environment", func(t *testing.T) {
		t.Setenv("DEEPSEEK_API_KEY", "sk-from-env")
		writeConfigFile(t, `
openai:
  api_key: sk-openai
llm:
  providers:
    - name: deepseek
      enabled: true
      priority: 1
      api_key: ${DEEPSEEK_API_KEY}
      model: deepseek-chat
memory:
  backend: local
`)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(cfg.LLM.Providers) != 1 || cfg.LLM.Providers[0].APIKey != "sk-from-env" {
			t.Errorf("api_key env expansion failed: %+v", cfg.LLM.Providers)
		}
	})

	t.Run("defaults when no config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		viper.Reset()
		t.Cleanup(viper.Reset)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPServer.Port != 8080 || cfg.Memory.Backend != "local" {
			t.Errorf("defaults missing: port=%d backend=%s", cfg.HTTPServer.Port, cfg.Memory.Backend)
		}
		if !cfg.LLM.FallbackEnabled || cfg.LLM.RetryAttempts != 3 ||
			cfg.LLM.RetryDelay != "1s" || cfg.LLM.MaxTotalTimeout != "90s" {
			t.Errorf("llm defaults missing: %+v", cfg.LLM)
		}
	})
}

func TestDurationDefaults(t *testing.T) {
	llm := LLMConfig{}
	if got := llm.RetryDelayDuration(); got != time.Second {
		t.Errorf("expected 1s default retry delay, got %v", got)
	}
	if got := llm.MaxTotalTimeoutDuration(); got != 90*time.Second {
		t.Errorf("expected 90s default total timeout, got %v", got)
	}

	llm = LLMConfig{RetryDelay: "250ms", MaxTotalTimeout: "30s"}
	if got := llm.RetryDelayDuration(); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}
	if got := llm.MaxTotalTimeoutDuration(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	OpenAI      OpenAIConfig
	LLM         LLMConfig
	Memory      MemoryConfig
	GoogleDrive GoogleDriveConfig
	RateLimit   RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// OpenAIConfig configures the OpenAI client used for embeddings and the
// generative completion provider.
type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	CompletionModel string
	EmbeddingModel  string
}

// LLMConfig holds configuration for the chat-provider abstraction layer.
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single chat provider.
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
}

// MemoryConfig selects and configures the memory store backend.
type MemoryConfig struct {
	Backend             string // "local" or "qdrant"
	SimilarityThreshold float64
	EmbedCacheSize      int

	Qdrant QdrantConfig
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

// GoogleDriveConfig configures the optional Drive ingestion source.
type GoogleDriveConfig struct {
	CredentialsPath string
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/docpilot/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/docpilot/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.OpenAI.APIKey = viper.GetString("openai.api_key")
	cfg.OpenAI.BaseURL = viper.GetString("openai.base_url")
	cfg.OpenAI.ChatModel = viper.GetString("openai.chat_model")
	cfg.OpenAI.CompletionModel = viper.GetString("openai.completion_model")
	cfg.OpenAI.EmbeddingModel = viper.GetString("openai.embedding_model")
	if key := viper.GetString("openai_api_key"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	// LLM provider abstraction. Bound explicitly: viper decodes via
	// mapstructure tags, so UnmarshalKey would miss the snake_case keys.
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	cfg.Memory.Backend = viper.GetString("memory.backend")
	cfg.Memory.SimilarityThreshold = viper.GetFloat64("memory.similarity_threshold")
	cfg.Memory.EmbedCacheSize = viper.GetInt("memory.embed_cache_size")
	cfg.Memory.Qdrant.URL = viper.GetString("memory.qdrant.url")
	cfg.Memory.Qdrant.CollectionName = viper.GetString("memory.qdrant.collection_name")
	cfg.Memory.Qdrant.VectorSize = viper.GetInt("memory.qdrant.vector_size")

	cfg.GoogleDrive.CredentialsPath = viper.GetString("google_drive.credentials_path")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("memory.backend", "local")
	viper.SetDefault("memory.similarity_threshold", 0.7)
	viper.SetDefault("memory.embed_cache_size", 512)
	viper.SetDefault("memory.qdrant.vector_size", 1536)

	viper.SetDefault("rate_limit.requests_per_min", 60)

	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "90s")
}

// expandEnvVar expands values in the format ${VAR_NAME} so credentials
// can live in the environment instead of config.yaml.
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

// Validate enforces startup preconditions. A misconfigured provider or
// memory backend must abort the process rather than fail mid-request.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}

	switch c.Memory.Backend {
	case "local":
		// no external dependencies
	case "qdrant":
		if c.Memory.Qdrant.URL == "" {
			return fmt.Errorf("memory.qdrant.url is required for the qdrant backend")
		}
		if c.Memory.Qdrant.CollectionName == "" {
			return fmt.Errorf("memory.qdrant.collection_name is required for the qdrant backend")
		}
		if c.Memory.Qdrant.VectorSize <= 0 {
			return fmt.Errorf("memory.qdrant.vector_size must be positive")
		}
	default:
		return fmt.Errorf("unknown memory backend %q (expected local or qdrant)", c.Memory.Backend)
	}

	if c.Memory.SimilarityThreshold < 0 || c.Memory.SimilarityThreshold > 1 {
		return fmt.Errorf("memory.similarity_threshold must be within [0, 1]")
	}

	for _, p := range c.LLM.Providers {
		if p.Enabled && p.APIKey == "" {
			return fmt.Errorf("llm provider %s is enabled but has no api_key", p.Name)
		}
	}

	return nil
}

// RetryDelayDuration parses LLMConfig.RetryDelay with a 1s default.
func (c *LLMConfig) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// MaxTotalTimeoutDuration parses LLMConfig.MaxTotalTimeout with a 90s default.
func (c *LLMConfig) MaxTotalTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.MaxTotalTimeout)
	if err != nil || d <= 0 {
		return 90 * time.Second
	}
	return d
}

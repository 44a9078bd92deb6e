// Package config provides configuration loading for the legal analyzer.
// Supports YAML files, .env files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// Config holds all configuration for the legal analyzer.
type Config struct {
	PDF           PDFConfig           `yaml:"pdf"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Models        ModelsConfig        `yaml:"models"`
	Cache         CacheConfig         `yaml:"cache"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PDFConfig selects the text extraction backend.
type PDFConfig struct {
	Backend           string `yaml:"backend"` // fitz or native
	ValidateStructure bool   `yaml:"validate_structure"`
}

// PipelineConfig holds analysis pipeline settings.
type PipelineConfig struct {
	LegalThreshold    int  `yaml:"legal_threshold"`
	ClassifyAgreement bool `yaml:"classify_agreement"`
}

// ModelsConfig selects and configures the model provider.
type ModelsConfig struct {
	Provider        string        `yaml:"provider"` // huggingface, openai, anthropic, gemini, vertex
	APIKey          string        `yaml:"api_key"`
	BaseURL         string        `yaml:"base_url"`
	ClassifierModel string        `yaml:"classifier_model"`
	SummarizerModel string        `yaml:"summarizer_model"`
	TranslatorModel string        `yaml:"translator_model"`
	ChatModel       string        `yaml:"chat_model"`
	TargetLanguage  string        `yaml:"target_language"`
	Timeout         time.Duration `yaml:"timeout"` // 0 disables
	MaxRetries      int           `yaml:"max_retries"`
	Vertex          VertexConfig  `yaml:"vertex"`
}

// VertexConfig holds Vertex AI project settings.
type VertexConfig struct {
	Project string `yaml:"project"`
	Region  string `yaml:"region"`
}

// CacheConfig holds capability cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // none, memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Prefix   string `yaml:"prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxUploadMB      int64         `yaml:"max_upload_mb"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.ConfigError("read config file", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, domain.ConfigError("parse config file", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, domain.ConfigError("validate config", err)
	}

	return cfg, nil
}

// DefaultConfig returns the reference pipeline settings.
func DefaultConfig() *Config {
	return &Config{
		PDF: PDFConfig{
			Backend: "fitz",
		},
		Pipeline: PipelineConfig{
			LegalThreshold:    domain.DefaultLegalThreshold,
			ClassifyAgreement: true,
		},
		Models: ModelsConfig{
			Provider:        "huggingface",
			ClassifierModel: "facebook/bart-large-mnli",
			SummarizerModel: "facebook/bart-large-cnn",
			TranslatorModel: "Helsinki-NLP/opus-mt-en-ur",
			TargetLanguage:  "Urdu",
			Vertex: VertexConfig{
				Region: "us-central1",
			},
		},
		Cache: CacheConfig{
			Driver:     "none",
			TTL:        24 * time.Hour,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
				Prefix:   "legal:",
			},
		},
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8090,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     5 * time.Minute,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
			MaxUploadMB:      32,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "console",
			ServiceName: "legal-analyzer",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.PDF.Backend {
	case "fitz", "native":
	default:
		return fmt.Errorf("invalid pdf backend: %s", c.PDF.Backend)
	}

	if c.Pipeline.LegalThreshold < 0 {
		return fmt.Errorf("legal_threshold must not be negative")
	}

	switch c.Models.Provider {
	case "huggingface", "openai", "anthropic", "gemini":
		if c.Models.APIKey == "" && !strings.HasPrefix(c.Models.BaseURL, "http://localhost") {
			return fmt.Errorf("models.api_key is required for provider %s", c.Models.Provider)
		}
	case "vertex":
		if c.Models.Vertex.Project == "" {
			return fmt.Errorf("models.vertex.project is required for provider vertex")
		}
	default:
		return fmt.Errorf("invalid model provider: %s", c.Models.Provider)
	}

	if c.Models.Provider != "huggingface" && c.Models.ChatModel == "" {
		return fmt.Errorf("models.chat_model is required for provider %s", c.Models.Provider)
	}

	if c.Models.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}

	switch c.Cache.Driver {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PDF_BACKEND"); v != "" {
		cfg.PDF.Backend = v
	}

	if v := os.Getenv("LEGAL_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.LegalThreshold = n
		}
	}

	if v := os.Getenv("CLASSIFY_AGREEMENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Pipeline.ClassifyAgreement = b
		}
	}

	if v := os.Getenv("MODEL_PROVIDER"); v != "" {
		cfg.Models.Provider = v
	}

	// Provider-specific key variables, then the generic override.
	switch cfg.Models.Provider {
	case "huggingface":
		if v := os.Getenv("HF_API_TOKEN"); v != "" {
			cfg.Models.APIKey = v
		}
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.Models.APIKey = v
		} else if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
			cfg.Models.APIKey = v
		}
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.Models.APIKey = v
		}
	case "gemini":
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			cfg.Models.APIKey = v
		}
	}

	if v := os.Getenv("MODEL_API_KEY"); v != "" {
		cfg.Models.APIKey = v
	}

	if v := os.Getenv("MODEL_BASE_URL"); v != "" {
		cfg.Models.BaseURL = v
	}

	if v := os.Getenv("CHAT_MODEL"); v != "" {
		cfg.Models.ChatModel = v
	}

	if v := os.Getenv("MODEL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Models.Timeout = d
		}
	}

	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		cfg.Models.Vertex.Project = v
	}

	if v := os.Getenv("GOOGLE_CLOUD_REGION"); v != "" {
		cfg.Models.Vertex.Region = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		applyRedisURL(&cfg.Cache.Redis, v)
	}

	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

// applyRedisURL reads redis://[:password@]host:port[/db] into cfg. A bare
// host:port is used as the address.
func applyRedisURL(cfg *RedisConfig, raw string) {
	opts, err := redis.ParseURL(raw)
	if err != nil {
		cfg.Addr = raw
		return
	}
	cfg.Addr = opts.Addr
	cfg.Password = opts.Password
	cfg.DB = opts.DB
}

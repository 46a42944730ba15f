// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package config defines the typed service configuration and its koanf
// loader. Configuration is resolved once at startup (defaults → YAML file →
// environment overrides) and treated as immutable afterwards; components
// receive narrow slices of it, never the whole struct.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Storage   StorageConfig   `koanf:"storage"`
	Session   SessionConfig   `koanf:"session"`
	Questions QuestionsConfig `koanf:"questions"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Retrieval RetrievalConfig `koanf:"retrieval"`
	Enrich    EnrichConfig    `koanf:"enrich"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	LLM       LLMConfig       `koanf:"llm"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit"`
	RateWindow      time.Duration `koanf:"rate_window"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StorageConfig configures the embedded badger store shared by the session
// backend and the persistent caches.
type StorageConfig struct {
	BadgerDir    string        `koanf:"badger_dir"`
	BadgerInMem  bool          `koanf:"badger_in_memory"`
	GCInterval   time.Duration `koanf:"gc_interval"`
	GCDiscardPct float64       `koanf:"gc_discard_ratio"`
}

// SessionConfig configures the session store.
type SessionConfig struct {
	// Backend selects the store implementation: memory, badger, or redis.
	Backend   string        `koanf:"backend"`
	TTL       time.Duration `koanf:"ttl"`
	RedisAddr string        `koanf:"redis_addr"`
	RedisDB   int           `koanf:"redis_db"`
	RedisPass string        `koanf:"redis_password"`
}

// QuestionsConfig configures the question catalog.
type QuestionsConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// EmbeddingConfig configures the embedding cache and provider.
type EmbeddingConfig struct {
	// Provider selects the embedder: none (deterministic fallback only)
	// or openai.
	Provider    string        `koanf:"provider"`
	OpenAIKey   string        `koanf:"openai_api_key"`
	OpenAIModel string        `koanf:"openai_model"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
	Timeout     time.Duration `koanf:"timeout"`
	Dimensions  int           `koanf:"dimensions"`
}

// RetrievalConfig configures the vector index client and result cache.
type RetrievalConfig struct {
	IndexURL       string        `koanf:"index_url"`
	IndexAPIKey    string        `koanf:"index_api_key"`
	TopK           int           `koanf:"top_k"`
	MaxTopK        int           `koanf:"max_top_k"`
	Timeout        time.Duration `koanf:"timeout"`
	ResultCacheTTL time.Duration `koanf:"result_cache_ttl"`
	BreakerName    string        `koanf:"breaker_name"`
	MaxRetries     int           `koanf:"max_retries"`
}

// EnrichConfig configures the catalog enricher.
type EnrichConfig struct {
	CatalogURL     string        `koanf:"catalog_url"`
	CatalogAPIKey  string        `koanf:"catalog_api_key"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	PerItemTimeout time.Duration `koanf:"per_item_timeout"`
	Concurrency    int           `koanf:"concurrency"`
	RatePerSecond  float64       `koanf:"rate_per_second"`
	RateBurst      int           `koanf:"rate_burst"`
}

// PipelineConfig configures orchestrator deadlines.
type PipelineConfig struct {
	TotalBudget time.Duration `koanf:"total_budget"`
}

// AnalyticsConfig configures the fire-and-forget analytics writer.
type AnalyticsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	DuckDBDir string `koanf:"duckdb_path"`
	QueueSize int    `koanf:"queue_size"`
	Workers   int    `koanf:"workers"`
}

// LLMConfig configures the optional LLM retrieval fallback.
type LLMConfig struct {
	Enabled      bool          `koanf:"enabled"`
	AnthropicKey string        `koanf:"anthropic_api_key"`
	Model        string        `koanf:"model"`
	Timeout      time.Duration `koanf:"timeout"`
}

// Validate checks cross-field constraints. It is called once after loading;
// failures abort startup with an actionable message.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	switch c.Session.Backend {
	case "memory", "badger", "redis":
	default:
		return fmt.Errorf("session.backend must be memory, badger, or redis, got %q", c.Session.Backend)
	}
	if c.Session.Backend == "redis" && c.Session.RedisAddr == "" {
		return fmt.Errorf("session.redis_addr is required when session.backend is redis")
	}
	if c.Session.Backend == "badger" && !c.Storage.BadgerInMem && c.Storage.BadgerDir == "" {
		return fmt.Errorf("storage.badger_dir is required when session.backend is badger")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	switch c.Embedding.Provider {
	case "none", "openai":
	default:
		return fmt.Errorf("embedding.provider must be none or openai, got %q", c.Embedding.Provider)
	}
	if c.Embedding.Provider == "openai" && c.Embedding.OpenAIKey == "" {
		return fmt.Errorf("embedding.openai_api_key is required when embedding.provider is openai")
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Retrieval.TopK < 1 || c.Retrieval.TopK > c.Retrieval.MaxTopK {
		return fmt.Errorf("retrieval.top_k must be in [1,%d], got %d", c.Retrieval.MaxTopK, c.Retrieval.TopK)
	}
	if c.Enrich.Concurrency < 1 {
		return fmt.Errorf("enrich.concurrency must be at least 1, got %d", c.Enrich.Concurrency)
	}
	if c.Analytics.Enabled && c.Analytics.QueueSize < 1 {
		return fmt.Errorf("analytics.queue_size must be positive when analytics is enabled")
	}
	if c.LLM.Enabled && c.LLM.AnthropicKey == "" {
		return fmt.Errorf("llm.anthropic_api_key is required when llm.enabled is true")
	}
	return nil
}

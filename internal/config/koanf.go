// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order; the
// first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemoment/config.yaml",
	"/etc/cinemoment/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces environment overrides: CINEMOMENT_SERVER_PORT → server.port.
const envPrefix = "CINEMOMENT_"

// Default returns the built-in defaults. Every field has a workable value so
// the service starts with zero external configuration (in-memory stores,
// deterministic embedding fallback, analytics disabled).
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       120,
			RateWindow:      time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			BadgerDir:    "/data/cinemoment/badger",
			BadgerInMem:  false,
			GCInterval:   10 * time.Minute,
			GCDiscardPct: 0.5,
		},
		Session: SessionConfig{
			Backend: "badger",
			TTL:     time.Hour,
		},
		Questions: QuestionsConfig{
			CacheTTL: time.Hour,
		},
		Embedding: EmbeddingConfig{
			Provider:    "none",
			OpenAIModel: "text-embedding-3-small",
			CacheTTL:    24 * time.Hour,
			Timeout:     3 * time.Second,
			Dimensions:  1536,
		},
		Retrieval: RetrievalConfig{
			TopK:           20,
			MaxTopK:        50,
			Timeout:        2 * time.Second,
			ResultCacheTTL: time.Hour,
			BreakerName:    "vector-index",
			MaxRetries:     1,
		},
		Enrich: EnrichConfig{
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			CacheTTL:       24 * time.Hour,
			PerItemTimeout: 1500 * time.Millisecond,
			Concurrency:    8,
			RatePerSecond:  20,
			RateBurst:      40,
		},
		Pipeline: PipelineConfig{
			TotalBudget: 8 * time.Second,
		},
		Analytics: AnalyticsConfig{
			Enabled:   false,
			DuckDBDir: "/data/cinemoment/analytics.duckdb",
			QueueSize: 1024,
			Workers:   2,
		},
		LLM: LLMConfig{
			Enabled: false,
			Model:   "claude-sonnet-4-5",
			Timeout: 10 * time.Second,
		},
	}
}

// Load resolves the configuration: defaults → YAML file → CINEMOMENT_* env
// overrides, then validates.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps CINEMOMENT_SECTION_FIELD_NAME to section.field_name.
// The first underscore separates the section; the rest stay joined so
// multi-word fields round-trip (CINEMOMENT_SESSION_REDIS_ADDR → session.redis_addr).
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, strings.ToLower(envPrefix)))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key
	}
	return parts[0] + "." + parts[1]
}

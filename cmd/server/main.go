// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package main is the Cinemoment server entry point.
//
// Startup order: configuration (koanf), logging (zerolog), the shared badger
// store, session backend, question catalog, pipeline collaborators, analytics,
// the HTTP router, and finally the suture supervisor tree that runs the
// server plus background services until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinemoment/internal/analytics"
	"github.com/tomtom215/cinemoment/internal/api"
	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/embedding"
	"github.com/tomtom215/cinemoment/internal/enrich"
	"github.com/tomtom215/cinemoment/internal/llm"
	"github.com/tomtom215/cinemoment/internal/logging"
	"github.com/tomtom215/cinemoment/internal/metrics"
	"github.com/tomtom215/cinemoment/internal/pipeline"
	"github.com/tomtom215/cinemoment/internal/questions"
	"github.com/tomtom215/cinemoment/internal/retrieval"
	"github.com/tomtom215/cinemoment/internal/session"
	"github.com/tomtom215/cinemoment/internal/supervisor"
	"github.com/tomtom215/cinemoment/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cinemoment: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()
	logger.Info().Str("version", version).Msg("Starting Cinemoment")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	// Shared badger store for durable sessions and the curated question
	// sets. The memory and redis session backends still use it for the
	// question store unless it is disabled entirely.
	db, err := openBadger(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("badger close failed")
			}
		}()
	}

	sessions, err := session.NewStore(cfg.Session, db)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer func() { _ = sessions.Close() }()

	var questionStore questions.Store
	if db != nil {
		questionStore = questions.NewBadgerStore(db)
	}
	catalog := questions.NewCatalog(questionStore, cfg.Questions.CacheTTL, logger)
	defer catalog.Close()

	var provider embedding.Provider
	if cfg.Embedding.Provider == "openai" {
		provider = embedding.NewOpenAIProvider(cfg.Embedding.OpenAIKey, cfg.Embedding.OpenAIModel)
		logger.Info().Str("provider", "openai").Msg("Embedding provider enabled")
	}
	embeddings := embedding.NewCache(provider, cfg.Embedding.CacheTTL, cfg.Embedding.Timeout, logger)

	searcher := retrieval.NewCachedSearcher(
		retrieval.NewClient(cfg.Retrieval, logger),
		cfg.Retrieval.ResultCacheTTL,
	)
	catalogFallback := retrieval.NewCatalogFallback()

	var llmFallback retrieval.Searcher
	if cfg.LLM.Enabled {
		llmFallback = llm.NewRecommender(cfg.LLM, logger)
		logger.Info().Str("model", cfg.LLM.Model).Msg("LLM retrieval fallback enabled")
	}

	var catalogClient enrich.CatalogClient
	if cfg.Enrich.CatalogURL != "" {
		catalogClient = enrich.NewHTTPCatalog(cfg.Enrich)
	}
	enricher := enrich.NewEnricher(catalogClient, cfg.Enrich, logger)

	// Analytics: DuckDB sink behind the bounded drop-on-overflow writer.
	var (
		writer *analytics.Writer
		sink   *analytics.DuckDBSink
	)
	if cfg.Analytics.Enabled {
		sink, err = analytics.NewDuckDBSink(cfg.Analytics.DuckDBDir)
		if err != nil {
			return fmt.Errorf("analytics sink: %w", err)
		}
		defer func() { _ = sink.Close() }()
		writer = analytics.NewWriter(sink, cfg.Analytics.QueueSize, cfg.Analytics.Workers, logger)
	}

	var emitter pipeline.Emitter
	if writer != nil {
		emitter = writer
	}

	orch := pipeline.New(
		sessions,
		embeddings,
		searcher,
		catalogFallback,
		llmFallback,
		enricher,
		emitter,
		pipeline.Options{
			TopK:             cfg.Retrieval.TopK,
			RetrievalTimeout: cfg.Retrieval.Timeout,
			TotalBudget:      cfg.Pipeline.TotalBudget,
		},
		logger,
	)

	checks := map[string]api.CheckFunc{}
	if db != nil {
		checks["badger"] = func(context.Context) error {
			if db.IsClosed() {
				return errors.New("badger database closed")
			}
			return nil
		}
	}
	if sink != nil {
		checks["duckdb"] = sink.Ping
	}

	handler := api.NewHandler(sessions, catalog, orch, emitter)
	router := api.NewRouter(handler, api.NewHealth(checks), api.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
		RateWindow:  cfg.Server.RateWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandler()), treeCfg)
	if err != nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if writer != nil {
		tree.AddAnalyticsService(writer)
	}
	if db != nil && !cfg.Storage.BadgerInMem {
		tree.AddDataService(services.NewBadgerGCService(db, cfg.Storage.GCInterval, cfg.Storage.GCDiscardPct))
	}

	go trackUptime()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", server.Addr).Msg("Cinemoment listening")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logger.Info().Msg("Cinemoment stopped")
	return nil
}

// openBadger opens the shared store, or returns nil when no directory is
// configured and the in-memory mode is off.
func openBadger(cfg config.StorageConfig) (*badger.DB, error) {
	switch {
	case cfg.BadgerInMem:
		return badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	case cfg.BadgerDir != "":
		return badger.Open(badger.DefaultOptions(cfg.BadgerDir).WithLogger(nil))
	default:
		return nil, nil
	}
}

func trackUptime() {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		metrics.AppUptime.Set(time.Since(start).Seconds())
	}
}

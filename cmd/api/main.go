package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"honeytrap-lab/internal/ai"
	"honeytrap-lab/internal/api"
	"honeytrap-lab/internal/api/handlers"
	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/internal/report"
	"honeytrap-lab/internal/store"
	"honeytrap-lab/pkg/logger"
)

func main() {
	// .env is optional; real deployments set environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
	})
	logger.SetGlobal(log)

	log.Info().
		Str("name", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting honeypot service")

	// Redis degrades gracefully: without it the service loses rate
	// limiting and verdict caching, nothing else.
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	sessionStore := store.NewSessionStore(store.Options{
		MaxSessions:   cfg.Session.MaxSessions,
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepInterval,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sessionStore.StartSweeper(ctx)

	llm := ai.NewLLMClient(cfg.LLM, log)
	if !llm.Available() {
		log.Warn().Msg("No LLM API key configured, using heuristic classification and canned replies")
	}

	patterns := ai.NewScamPatternDB()
	var verdictCache ai.VerdictCache
	if redisCache != nil && cfg.Detection.VerdictCacheOn {
		verdictCache = redisCache
	}
	classifier := ai.NewClassifier(llm, patterns, verdictCache,
		cfg.Detection.ScamThreshold, cfg.Detection.HistoryWindow, log)
	persona := ai.NewPersona(llm, log)

	extractor := services.NewIntelExtractor(log)
	aggregator := services.NewAggregator(extractor)
	policy := services.NewTerminationPolicy(cfg.Detection.MaxMessages)
	summary := services.NewSummaryComposer()

	reporter := report.NewClient(cfg.Report, log)
	if !reporter.Enabled() {
		log.Warn().Msg("No report callback configured, final reports will not be delivered")
	}

	h := handlers.NewHandlers(handlers.Dependencies{
		Config:     cfg,
		Logger:     log,
		Store:      sessionStore,
		Classifier: classifier,
		Persona:    persona,
		Aggregator: aggregator,
		Policy:     policy,
		Summary:    summary,
		Reporter:   reporter,
		Cache:      redisCache,
	})

	router := api.Setup(cfg, h, redisCache, log)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

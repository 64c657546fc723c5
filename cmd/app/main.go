package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/config"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/adapter"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/repository"
	aiAdapters "github.com/Novalitix/go-to-japan-ai/internal/infra/adapters/ai"
	searchAdapters "github.com/Novalitix/go-to-japan-ai/internal/infra/adapters/search"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/logging"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/memstore"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/metrics"
	red "github.com/Novalitix/go-to-japan-ai/internal/infra/redis"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/sched"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/web"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/worker"
	"github.com/Novalitix/go-to-japan-ai/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop planner fallback, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	// ---- Job store (redis when configured, process memory otherwise) ----
	var jobs repository.JobRepository
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		jobs = red.NewJobRepo(redisClient, cfg.Jobs.Retention)
		logger.Info().Str("addr", cfg.Redis.URL).Msg("job store: redis")
	} else {
		jobs = memstore.NewJobRepo()
		logger.Info().Msg("job store: memory")
	}

	// ---- LLM adapter (OpenAI -> Gemini -> noop in dev) ----
	var llm adapter.LLMAdapter
	switch {
	case cfg.AI.OpenAIKey != "":
		llm, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("planner: OpenAI")
	case cfg.AI.GeminiKey != "":
		llm, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model)
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("planner: Gemini")
	case cfg.Runtime.Dev:
		llm = aiAdapters.NewNoopAdapter()
		logger.Warn().Msg("planner: noop (dev mode, no provider key)")
	default:
		log.Fatalf("no LLM provider configured: set ai.openai_key or ai.gemini_key in %s", *cfgPath)
	}
	llm = aiAdapters.NewLimitedLLM(llm, cfg.AI.ConcurrentLimit)

	// ---- Search adapter (optional) ----
	var search adapter.SearchAdapter
	if cfg.AI.SerperKey != "" {
		serper, err := searchAdapters.NewSerperAdapter(cfg.AI.SerperKey)
		if err != nil {
			log.Fatalf("serper adapter: %v", err)
		}
		search = serper
		logger.Info().Msg("search: serper.dev")
	} else {
		logger.Warn().Msg("search: disabled (no serper key); planner runs without live grounding")
	}

	// ---- Use cases ----
	itineraryUC, err := usecase.NewItineraryUseCase(llm, search, cfg.AI.Model, logger)
	if err != nil {
		log.Fatalf("itinerary usecase: %v", err)
	}

	pool := worker.NewPool(cfg.Jobs.Workers, cfg.Jobs.Queue, logger)
	pool.Start(ctx)
	defer pool.Stop()

	tripUC := usecase.NewTripUseCase(jobs, itineraryUC, pool, cfg.Jobs.Timeout, logger)

	// ---- Janitor (retention sweep; redis evicts via TTL on its own) ----
	janitor := sched.NewJanitor(cfg.Jobs.JanitorInterval, cfg.Jobs.Retention, jobs, logger)
	go func() { _ = janitor.Run(ctx) }()

	// ---- HTTP server ----
	metrics.MustRegister()
	srv := web.NewServer(tripUC, cfg.API.Key, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	cancel()
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/cache"
	"github.com/EthanLe-hub/FounderHubAI/internal/export"
	"github.com/EthanLe-hub/FounderHubAI/internal/handlers"
	"github.com/EthanLe-hub/FounderHubAI/internal/httpserver"
	"github.com/EthanLe-hub/FounderHubAI/internal/llm"
	"github.com/EthanLe-hub/FounderHubAI/internal/metrics"
	"github.com/EthanLe-hub/FounderHubAI/internal/store"
	"github.com/EthanLe-hub/FounderHubAI/pkg/logging"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"8000"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	CacheBackend  string        `env:"CACHE_BACKEND" envDefault:"memory"` // memory | redis | memcache
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	MemcacheAddr  string        `env:"MEMCACHE_ADDR" envDefault:"127.0.0.1:11211"`
	VersionID     string        `env:"BACKEND_VERSION" envDefault:"v1"`
	DataPath      string        `env:"DATA_PATH" envDefault:"user_data.db"`
	LLMBaseURL    string        `env:"OPENAI_API_BASE" envDefault:"https://api.openai.com"`
	LLMAPIKey     string        `env:"OPENAI_API_KEY"`
	Model         string        `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMMaxRPS     float64       `env:"LLM_MAX_RPS" envDefault:"0"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("backend exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	// .env is a local-dev convenience; missing file is fine.
	_ = godotenv.Load()
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("allowed_origin", cfg.AllowedOrigin),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.String("version_id", cfg.VersionID),
		zap.String("data_path", cfg.DataPath),
		zap.String("llm_base_url", cfg.LLMBaseURL),
		zap.String("model", cfg.Model),
	)

	// ----- Cache backend clients (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	var memcacheClient *memcache.Client
	if cfg.CacheBackend == "memcache" {
		memcacheClient = memcache.New(cfg.MemcacheAddr)
		logger.Info("memcache client configured",
			zap.String("addr", cfg.MemcacheAddr),
		)
	}

	// ----- Response cache -----
	cacheCfg := cache.Config{
		Backend: cfg.CacheBackend,
		TTL:     cfg.CacheTTL,
		Prefix:  "founderhub",
	}
	respCache := cache.New(cacheCfg, redisClient, memcacheClient)
	if closer, ok := respCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	respCache = cache.NewLoggingCache(respCache)

	// ----- Per-user deck store -----
	userStore, err := store.Open(cfg.DataPath)
	if err != nil {
		logger.Error("user store open failed", zap.Error(err))
		return err
	}
	defer userStore.Close()

	// ----- LLM client -----
	if cfg.LLMAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	llmClient, err := llm.NewClient(llm.Config{
		BaseURL:              cfg.LLMBaseURL,
		APIKey:               cfg.LLMAPIKey,
		UpstreamTimeout:      cfg.LLMTimeout,
		MaxRequestsPerSecond: cfg.LLMMaxRPS,
	}, logger)
	if err != nil {
		return err
	}
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// ----- Handlers -----
	genHandler := handlers.NewGenerateHandler(
		respCache,
		cfg.CacheTTL,
		cfg.VersionID,
		llmClient,
		cfg.Model,
	)
	exportHandler := handlers.NewExportHandler(export.PDFRenderer{}, export.PPTRenderer{})
	deckHandler := handlers.NewDeckStoreHandler(userStore)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, httpserver.Options{
		AllowedOrigin: cfg.AllowedOrigin,
	}, genHandler, exportHandler, deckHandler)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting backend",
		zap.String("addr", srv.Addr),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.String("version_id", cfg.VersionID),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

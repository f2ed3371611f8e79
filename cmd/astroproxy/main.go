package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"astro-proxy/internal/astro"
	"astro-proxy/internal/cache"
	"astro-proxy/internal/handlers"
	"astro-proxy/internal/httpserver"
	"astro-proxy/internal/metrics"
	"astro-proxy/pkg/logging"
)

type Config struct {
	Port            string
	BaseURL         string
	Credentials     astro.Credentials
	CacheBackend    string // "memory", "redis" or "none"
	CacheTTL        time.Duration
	CacheMaxEntries int
	RedisAddr       string
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:    getenv("PORT", "10000"),
		BaseURL: getenv("ASTRO_BASE_URL", astro.DefaultBaseURL),
		Credentials: astro.Credentials{
			UserID: os.Getenv(astro.EnvUserID),
			APIKey: os.Getenv(astro.EnvAPIKey),
		},
		CacheBackend: getenv("CACHE_BACKEND", cache.BackendMemory),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
	}

	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	maxEntries, err := strconv.Atoi(getenv("CACHE_MAX_ENTRIES", "1000"))
	if err != nil {
		return Config{}, fmt.Errorf("CACHE_MAX_ENTRIES: %w", err)
	}
	cfg.CacheMaxEntries = maxEntries

	return cfg, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("astro-proxy exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	presence := cfg.Credentials.Presence()
	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("astro_base_url", cfg.BaseURL),
		zap.Bool("astro_user_id_set", presence[astro.EnvUserID]),
		zap.Bool("astro_api_key_set", presence[astro.EnvAPIKey]),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("cache_max_entries", cfg.CacheMaxEntries),
	)
	if !cfg.Credentials.Configured() {
		// Not fatal: /western_horoscope answers with a configuration error.
		logger.Warn("astrology API credentials missing",
			zap.Strings("missing", cfg.Credentials.Missing()),
		)
	}

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == cache.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Response cache -----
	cacheCfg := cache.Config{
		Backend:    cfg.CacheBackend,
		TTL:        cfg.CacheTTL,
		Prefix:     "astroproxy",
		MaxEntries: cfg.CacheMaxEntries,
	}
	responseCache, err := cache.NewResponseCache(cacheCfg, redisClient)
	if err != nil {
		return err
	}
	responseCache = cache.NewLoggingResponseCache(responseCache)

	// ----- Upstream client -----
	upstream, err := astro.NewClient(astro.Config{
		BaseURL:     cfg.BaseURL,
		Credentials: cfg.Credentials,
	}, logger)
	if err != nil {
		return err
	}
	if closer, ok := upstream.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// ----- Handlers -----
	pingHandler := handlers.NewPingHandler(cfg.Credentials)
	horoscopeHandler := handlers.NewHoroscopeHandler(
		responseCache,
		cacheCfg.TTL,
		cfg.Credentials,
		upstream,
	)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, pingHandler, horoscopeHandler)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("astro proxy listening",
		zap.String("addr", srv.Addr),
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-stop:
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

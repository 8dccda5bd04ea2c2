package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/config"
	dbRedis "github.com/paperlane/simcheck/internal/db/redis"
	"github.com/paperlane/simcheck/internal/domain"
	"github.com/paperlane/simcheck/internal/extract"
	logpkg "github.com/paperlane/simcheck/internal/logger"
	"github.com/paperlane/simcheck/internal/metrics"
	"github.com/paperlane/simcheck/internal/repository/embcache"
	chiTransport "github.com/paperlane/simcheck/internal/transport/chi"
	openaiEmb "github.com/paperlane/simcheck/internal/transport/openai"
	embeddinguc "github.com/paperlane/simcheck/internal/usecase/embedding"
	healthuc "github.com/paperlane/simcheck/internal/usecase/health"
	metadatauc "github.com/paperlane/simcheck/internal/usecase/metadata"
	similarityuc "github.com/paperlane/simcheck/internal/usecase/similarity"
	"github.com/paperlane/simcheck/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting simcheck API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("semantic", cfg.Embedding.Enabled()),
		zap.Bool("cache", cfg.Cache.Enabled()),
	)

	// Register scoring metrics explicitly (no init())
	metrics.RegisterScoringMetrics()

	// Optional embedding cache store
	var store *dbRedis.Store
	if cfg.Cache.Enabled() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("Embedding cache not reachable, embeddings will not be cached", zap.Error(err))
		}
		cancel()
	}

	// Embedder chain: OpenAI -> Cached. Leave the interface nil when no
	// provider is configured so the semantic handle sees true absence.
	var embedder domain.Embedder
	if cfg.Embedding.Enabled() {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		embedder = base
		if store != nil {
			ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
			embedder = embcache.New(base, store, ttl, metrics.EmbeddingCacheTotal, logger)
		}
		logger.Info("Embedder created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}

	probeTimeout := time.Duration(cfg.Embedding.ProbeTimeoutSec) * time.Second
	semantic := embeddinguc.NewHandle(embedder, probeTimeout, logger)

	sampleCorpus := loadSampleCorpus(cfg.Corpus.SamplePath, logger)

	extractor := extract.New(time.Duration(cfg.Extract.TimeoutSec)*time.Second, logger)

	simSvc, err := similarityuc.NewService(extractor, semantic, cfg.Scoring.Workers, logger)
	if err != nil {
		logger.Fatal("Failed to create similarity service", zap.Error(err))
	}
	defer simSvc.Close()

	metaSvc := metadatauc.NewService(logger)
	healthSvc := healthuc.New(semantic)

	server := chiTransport.NewServer(simSvc, metaSvc, healthSvc, sampleCorpus, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// loadSampleCorpus reads the optional fallback corpus. Missing or malformed
// files disable the fallback rather than blocking startup.
func loadSampleCorpus(path string, logger *zap.Logger) []domain.Document {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Sample corpus not loaded", zap.String("path", path), zap.Error(err))
		return nil
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		logger.Warn("Sample corpus not parsed", zap.String("path", path), zap.Error(err))
		return nil
	}

	logger.Info("Sample corpus loaded", zap.String("path", path), zap.Int("documents", len(docs)))
	return docs
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

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

	"github.com/triporama/placedex/internal/config"
	logpkg "github.com/triporama/placedex/internal/logger"
	"github.com/triporama/placedex/internal/metrics"
	"github.com/triporama/placedex/internal/repository/catalog"
	chiTransport "github.com/triporama/placedex/internal/transport/chi"
	openaiSuggest "github.com/triporama/placedex/internal/transport/openai"
	dedupeuc "github.com/triporama/placedex/internal/usecase/dedupe"
	displayuc "github.com/triporama/placedex/internal/usecase/display"
	healthuc "github.com/triporama/placedex/internal/usecase/health"
	"github.com/triporama/placedex/internal/usecase/merge"
	"github.com/triporama/placedex/internal/usecase/rank"
	"github.com/triporama/placedex/internal/usecase/resolve"
	"github.com/triporama/placedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting placedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := catalog.New(catalog.Config{
		Addrs:     cfg.Database.Addrs,
		Password:  cfg.Database.Password,
		KeyPrefix: cfg.Database.KeyPrefix,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog store not ready", zap.Error(err))
	}
	logger.Info("Connected to catalog store")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	resolver := resolve.New(resolve.Config{
		MinNameSimilarity: cfg.Engine.Resolver.MinNameSimilarity,
		MaxDistanceMeters: cfg.Engine.Resolver.MaxDistanceMeters,
		MinPerCategory:    cfg.Engine.Resolver.MinPerCategory,
		MinTotal:          cfg.Engine.Resolver.MinTotal,
	})
	allocator := displayuc.New(displayuc.Config{
		MaxPerBucket: cfg.Engine.Display.MaxPerBucket,
		MinPerBucket: cfg.Engine.Display.MinPerBucket,
	})
	detector := dedupeuc.New(dedupeuc.Config{
		PreFilterDeg:      cfg.Engine.Dedupe.PreFilterDeg,
		NearDeg:           cfg.Engine.Dedupe.NearDeg,
		NearNameSim:       cfg.Engine.Dedupe.NearNameSim,
		ExactNameDeg:      cfg.Engine.Dedupe.ExactNameDeg,
		CategoryDeg:       cfg.Engine.Dedupe.CategoryDeg,
		CategoryNameSim:   cfg.Engine.Dedupe.CategoryNameSim,
		IncludeSingletons: cfg.Engine.Dedupe.IncludeSingletons,
	})

	var suggester *openaiSuggest.Suggester
	if cfg.Suggest.APIKey != "" {
		suggester = openaiSuggest.NewSuggester(&openaiSuggest.Config{
			APIKey:        cfg.Suggest.APIKey,
			BaseURL:       cfg.Suggest.BaseURL,
			Model:         cfg.Suggest.Model,
			MaxCandidates: cfg.Suggest.MaxCandidates,
			Temperature:   float32(cfg.Suggest.Temperature),
			Logger:        logger,
		})
		logger.Info("Suggestion provider enabled", zap.String("model", cfg.Suggest.Model))
	}

	// Pass nil interface (not typed nil pointer!) if the suggester is off.
	var suggestChecker healthuc.SuggestChecker
	if suggester != nil {
		suggestChecker = suggester
	}
	healthSvc := healthuc.New(store, suggestChecker)

	server := chiTransport.NewServer(
		resolver, allocator, detector, rank.New(), merge.New(), store, healthSvc, logger,
	)
	if suggester != nil {
		server.WithSuggester(suggester)
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.HTTP.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
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

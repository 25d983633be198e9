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

	"github.com/tanakakogyo/shopkb/internal/config"
	dbRedis "github.com/tanakakogyo/shopkb/internal/db/redis"
	logpkg "github.com/tanakakogyo/shopkb/internal/logger"
	"github.com/tanakakogyo/shopkb/internal/metrics"
	knowledgerepo "github.com/tanakakogyo/shopkb/internal/repository/knowledge"
	chiTransport "github.com/tanakakogyo/shopkb/internal/transport/chi"
	openaiGen "github.com/tanakakogyo/shopkb/internal/transport/openai"
	chatuc "github.com/tanakakogyo/shopkb/internal/usecase/chat"
	healthuc "github.com/tanakakogyo/shopkb/internal/usecase/health"
	searchuc "github.com/tanakakogyo/shopkb/internal/usecase/search"
	"github.com/tanakakogyo/shopkb/internal/version"
)

// knowledgeLoader is the read surface both knowledge repositories provide.
type knowledgeLoader interface {
	searchuc.CatalogLoader
	searchuc.DrawingLoader
	searchuc.ContributionLoader
	healthuc.DataPinger
}

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

	logger.Info("Starting shopkb API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("data_driver", cfg.Data.Driver),
	)

	ctx := context.Background()

	// Create knowledge loader based on driver
	var loader knowledgeLoader
	switch cfg.Data.Driver {
	case "fs":
		loader = knowledgerepo.NewFS(cfg.Data.Root, logger)
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Data.Addrs,
			Username: cfg.Data.Username,
			Password: cfg.Data.Password,
			DB:       cfg.Data.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Data.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis")

		loader = knowledgerepo.NewRedis(store, cfg.Data.KeyPrefix, logger)
	default:
		logger.Fatal("Unknown data driver", zap.String("driver", cfg.Data.Driver))
	}

	if err := loader.Ping(ctx); err != nil {
		logger.Warn("Knowledge base not reachable at startup", zap.Error(err))
	}

	// Register knowledge metrics explicitly (no init())
	metrics.RegisterKnowledgeMetrics()

	// Build chat generators — composition root
	primary := openaiGen.NewGenerator(&openaiGen.Config{
		APIKey:   cfg.LLM.Primary.APIKey,
		BaseURL:  cfg.LLM.Primary.BaseURL,
		Model:    cfg.LLM.Primary.Model,
		Provider: cfg.LLM.Primary.Provider,
		Logger:   logger,
	})

	// Pass nil interface (not typed nil pointer!) when no fallback is
	// configured. Go gotcha: (*Generator)(nil) wrapped in chat.Generator != nil.
	var fallback chatuc.Generator
	if cfg.LLM.Fallback.Configured() {
		fallback = openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:   cfg.LLM.Fallback.APIKey,
			BaseURL:  cfg.LLM.Fallback.BaseURL,
			Model:    cfg.LLM.Fallback.Model,
			Provider: cfg.LLM.Fallback.Provider,
			Logger:   logger,
		})
		logger.Info("Fallback chat model configured",
			zap.String("provider", cfg.LLM.Fallback.Provider),
			zap.String("model", cfg.LLM.Fallback.Model),
		)
	}

	// Create use case services
	searchSvc := searchuc.New(loader, loader, loader, logger).
		WithMaxCandidates(cfg.Search.MaxCandidates)
	chatSvc := chatuc.New(searchSvc, primary, fallback, logger)
	healthSvc := healthuc.New(loader, primary)

	// Create chi server
	server := chiTransport.NewServer(chatSvc, searchSvc, healthSvc)

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
			ctx := logpkg.WithContext(r.Context(), reqLogger)

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

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artmarket-gateway/internal/analytics"
	"artmarket-gateway/internal/cms"
	"artmarket-gateway/internal/config"
	"artmarket-gateway/internal/db"
	"artmarket-gateway/internal/exchange"
	"artmarket-gateway/internal/graph"
	"artmarket-gateway/internal/gravity"
	"artmarket-gateway/internal/logger"
	"artmarket-gateway/internal/metrics"
	"artmarket-gateway/internal/middleware"
	"artmarket-gateway/internal/pagination"
	"artmarket-gateway/internal/upstream"

	"github.com/99designs/gqlgen/graphql/playground"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, handler http.Handler) error {
		return http.ListenAndServe(addr, handler)
	}
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(cfg)
	defer database.Close()

	router, closeServer, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer closeServer()

	addr := ":" + cfg.AppPort
	logger.L().Info("graphql server running", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, router)
}

// newServer wires the upstream clients, stores and middleware into the
// HTTP router. The returned func releases the cache and the CMS bucket.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	gravitySvc := gravity.NewService(upstream.NewClient("gravity", cfg.GravityURL, cfg.GravityToken, cfg.UpstreamTimeout))
	exchangeSvc := exchange.NewService(upstream.NewClient("exchange", cfg.ExchangeURL, cfg.ExchangeToken, cfg.UpstreamTimeout))
	analyticsSvc := analytics.NewService(analytics.NewRepository(database))

	store, err := cms.OpenStore(ctx, cfg.CMSBucketURL)
	if err != nil {
		return nil, nil, err
	}

	cache, err := pagination.NewFetchCache(cfg.CacheMaxCost, cfg.CacheTTL)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	resolver := &graph.Resolver{
		Gravity:   gravitySvc,
		Exchange:  exchangeSvc,
		Articles:  store,
		Analytics: analyticsSvc,
		Cache:     cache,
		Options: graph.Options{
			Timeout:    cfg.UpstreamTimeout,
			MaxRetries: cfg.UpstreamMaxRetries,
			RetryWait:  cfg.UpstreamRetryWait,
			RPS:        cfg.UpstreamRPS,
		},
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		cache.Close()
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to build schema: %w", err)
	}

	limiter := middleware.NewRateLimiter()
	go limiter.Cleanup(ctx, time.Minute)

	var gql http.Handler = graph.NewHandler(schema, cfg.MaxQueryDepth)
	gql = limiter.Middleware(gql)
	gql = middleware.Auth([]byte(cfg.JWTSecret))(gql)
	gql = middleware.CORS(cfg.AllowedOrigin)(gql)

	ready := func(ctx context.Context) error { return db.Ping(ctx, database) }

	var router http.Handler = setupRouter(gql, metrics.Handler(), ready)
	router = logger.LoggingMiddleware(router)
	router = logger.RequestIDMiddleware(router)

	closeServer := func() {
		cache.Close()
		if err := store.Close(); err != nil {
			logger.L().Warn("failed to close cms bucket", zap.Error(err))
		}
	}
	return router, closeServer, nil
}

// setupRouter mounts the playground, the GraphQL endpoint, metrics and a
// health check that reports 503 while ready fails.
func setupRouter(gql, metricsHandler http.Handler, ready func(context.Context) error) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	mux.Handle("/query", gql)
	mux.Handle("/metrics", metricsHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				logger.FromCtx(r.Context()).Warn("health check failed", zap.Error(err))
				http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picturebooks/internal/book"
	"picturebooks/internal/config"
	"picturebooks/internal/httpx"
	"picturebooks/internal/logger"
	"picturebooks/internal/platform/postgres"
	"picturebooks/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.Open(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer dbPool.Close()
	log.Info().Str("dsn", postgres.RedactDSN(cfg.DB.DSN)).Msg("database connection OK")

	views, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse templates")
	}

	bookRepository := book.NewPostgresRepo(dbPool, cfg.DB.QueryTimeout)
	bookHandler := book.NewHTTPHandler(book.NewService(bookRepository), views)

	router := newRouter(cfg, log, prometheus.DefaultRegisterer, bookHandler, dbPool.Ping)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

// newRouter wires middleware, operational endpoints and the catalog pages.
func newRouter(
	cfg *config.Config,
	log zerolog.Logger,
	reg prometheus.Registerer,
	books *book.HTTPHandler,
	ping func(context.Context) error,
) chi.Router {
	metrics := httpx.NewMetrics(reg)
	limiter := httpx.NewRateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)

	router := chi.NewRouter()
	router.Use(
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware,
		metrics.Middleware,
		httpx.SecurityHeadersMiddleware(cfg.HTTP.EnableHSTS),
		httpx.RequestSizeLimitMiddleware(cfg.HTTP.MaxBodyBytes),
	)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ping(ctx); err != nil {
			httpx.TextError(w, http.StatusServiceUnavailable, "db not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/static/*", view.Static())

	router.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		books.Routes(r)
	})
	return router
}

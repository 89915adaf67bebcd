package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/gpcalc/internal/config"
	"github.com/Simplici0/gpcalc/internal/db"
	"github.com/Simplici0/gpcalc/internal/history"
	"github.com/Simplici0/gpcalc/internal/logging"
	"github.com/Simplici0/gpcalc/internal/migrations"
)

const (
	shutdownTimeout = 5 * time.Second
	evictEvery      = 5 * time.Minute
)

type server struct {
	db       *sql.DB
	history  *history.Store
	sessions *sessionService
	limiter  *sessionRateLimiter
	logger   zerolog.Logger
	now      func() time.Time
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gpcalc server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("GPCALC_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if cfg.SessionSecret == "" {
		logger.Warn().Msg("SESSION_SECRET is not set")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database, ""); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	srv := newServer(database, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", httpServer.Addr).Str("env", cfg.Env).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		srv.limiter.run(ctx, evictEvery)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newServer(database *sql.DB, cfg config.Config, logger zerolog.Logger) *server {
	return &server{
		db:       database,
		history:  history.NewStore(database),
		sessions: newSessionService(cfg.SessionSecret, !cfg.IsDev()),
		limiter:  newSessionRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("latency", duration).
			Msg("HTTP request")
	}))
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.sessions.middleware)

		r.Get("/families", s.handleFamilies)
		r.Get("/targets", s.handleTargets)
		r.With(s.limiter.middleware).Post("/calculate/{family}", s.handleCalculate)

		r.Get("/history", s.handleHistoryList)
		r.Delete("/history", s.handleHistoryClear)
		r.Get("/history/report.xlsx", s.handleHistoryReport)
		r.Delete("/history/{id}", s.handleHistoryDelete)
	})

	return r
}

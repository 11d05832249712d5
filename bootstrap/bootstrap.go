// Package bootstrap wires adapters into application services and runs the
// HTTP server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/minsu-kang/steamrec/adapters/badger"
	"github.com/minsu-kang/steamrec/adapters/clock"
	"github.com/minsu-kang/steamrec/adapters/gemini"
	"github.com/minsu-kang/steamrec/adapters/metrics"
	"github.com/minsu-kang/steamrec/adapters/random"
	"github.com/minsu-kang/steamrec/adapters/sqlite"
	"github.com/minsu-kang/steamrec/adapters/steam"
	"github.com/minsu-kang/steamrec/app"
	"github.com/minsu-kang/steamrec/config"
	"github.com/minsu-kang/steamrec/domain/ratelimit"
	"github.com/minsu-kang/steamrec/web"
)

// App holds the wired service and its resources.
type App struct {
	Handler http.Handler
	Limiter *app.PathLimiter

	db     *sqlite.DB
	ledger *badger.Store
	logger zerolog.Logger
}

// NewLogger builds the root logger from configuration.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	if cfg.Format == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}

// Build wires all adapters and services from configuration.
func Build(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Init(); err != nil {
		db.Close()
		return nil, err
	}

	ledger, err := badger.Open(cfg.Ledger.Dir)
	if err != nil {
		db.Close()
		return nil, err
	}

	sysClock := clock.System{}
	rand := random.NewSystem()
	collector := metrics.New()

	sampler := app.NewSampler(sqlite.NewGameFinder(db), ledger, collector, logger)
	recommender := app.NewRecommender(app.RecommenderDeps{
		Sampler:   sampler,
		Pairs:     app.NewPairResolver(sqlite.NewCooccurrenceStore(db)),
		Extractor: gemini.NewClient(gemini.Config{
			BaseURL: cfg.Gemini.BaseURL,
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		}, logger),
		Library: steam.NewClient(steam.Config{
			BaseURL: cfg.Steam.BaseURL,
			APIKey:  cfg.Steam.APIKey,
			Timeout: cfg.Steam.Timeout,
		}, logger),
		Catalog: sqlite.NewTagCatalog(db),
		Cache:   ledger,
		Rand:    rand,
		Metrics: collector,
		Logger:  logger,
	})

	limiter := app.NewPathLimiter(Rules(cfg.RateLimit), RuleConfig(cfg.RateLimit.Default), sysClock, collector)

	handler := web.NewHandler(web.Deps{
		Recommender: recommender,
		Limiter:     limiter,
		APIKey:      cfg.Auth.APIKey,
		Metrics:     collector,
		Logger:      logger,
	})

	return &App{
		Handler: handler.Router(),
		Limiter: limiter,
		db:      db,
		ledger:  ledger,
		logger:  logger,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if err := a.ledger.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("closing ledger")
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("closing database")
	}
}

// Run serves the app until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, a *App) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      a.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Rules converts configured rate rules to limiter rules, preserving order.
func Rules(cfg config.RateLimitConfig) []app.Rule {
	rules := make([]app.Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, app.Rule{Pattern: r.Pattern, Config: RuleConfig(r)})
	}
	return rules
}

// RuleConfig converts one configured rate rule to a bucket configuration.
func RuleConfig(r config.RateRule) ratelimit.Config {
	mode := ratelimit.Greedy
	if r.Mode == "interval" {
		mode = ratelimit.Interval
	}
	return ratelimit.Config{
		Capacity:     r.Capacity,
		RefillTokens: r.RefillTokens,
		RefillPeriod: r.RefillPeriod,
		Mode:         mode,
	}
}

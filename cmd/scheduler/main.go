// Package main runs the discovery pipeline on a cron schedule and exposes
// Prometheus metrics.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/chain"
	"smartmoney-discovery/internal/config"
	"smartmoney-discovery/internal/dexscreener"
	"smartmoney-discovery/internal/discovery"
	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/observability"
	"smartmoney-discovery/internal/registry"
	registrymem "smartmoney-discovery/internal/registry/memory"
	registrypg "smartmoney-discovery/internal/registry/postgres"
	"smartmoney-discovery/internal/runlog"
	runlogch "smartmoney-discovery/internal/runlog/clickhouse"
	runlogmem "smartmoney-discovery/internal/runlog/memory"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trending := dexscreener.NewClient(cfg.TrendingBaseURL, dexscreener.WithLogger(logger))
	activity := chain.NewClient(cfg.IndexerRPCURL, chain.WithLogger(logger))

	var store registry.Store
	if cfg.PostgresDSN != "" {
		pool, err := registrypg.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("registry connect failed")
		}
		defer pool.Close()
		store = registrypg.NewStore(pool)
	} else {
		logger.Warn().Msg("POSTGRES_DSN not set, using in-memory registry")
		store = registrymem.NewStore()
	}

	var runLog runlog.Store
	if cfg.ClickHouseDSN != "" {
		conn, err := runlogch.NewConn(ctx, cfg.ClickHouseDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("run log connect failed")
		}
		defer conn.Close()
		runLog = runlogch.NewStore(conn)
	} else {
		runLog = runlogmem.NewStore()
	}

	metrics := observability.NewMetrics("", nil)

	orch := discovery.New(discovery.Options{
		Trending: trending,
		Activity: activity,
		Registry: store,
		RunLog:   runLog,
		Metrics:  metrics,
		Logger:   logger,
	})

	// One run in flight at a time; an overdue tick is skipped, not queued.
	var running sync.Mutex
	job := func() {
		if !running.TryLock() {
			logger.Warn().Msg("previous discovery run still in flight, skipping tick")
			return
		}
		defer running.Unlock()

		added := orch.DiscoverWallets(ctx)
		logger.Info().Int("added", added).Msg("scheduled discovery run finished")

		if learned, err := store.CountBySource(ctx, domain.SourceLearned); err == nil {
			metrics.SetRegistryLearned(learned)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSchedule, job); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.CronSchedule).Msg("invalid cron schedule")
	}
	c.Start()
	logger.Info().Str("schedule", cfg.CronSchedule).Msg("scheduler started")

	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("metrics server failed")
		}
	}()
	logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics endpoint up")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	cancel()
	cronCtx := c.Stop()
	<-cronCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

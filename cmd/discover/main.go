// Package main runs one discovery pass and prints the result summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/chain"
	"smartmoney-discovery/internal/config"
	"smartmoney-discovery/internal/dexscreener"
	"smartmoney-discovery/internal/discovery"
	"smartmoney-discovery/internal/registry"
	registrymem "smartmoney-discovery/internal/registry/memory"
	registrypg "smartmoney-discovery/internal/registry/postgres"
	"smartmoney-discovery/internal/runlog"
	runlogch "smartmoney-discovery/internal/runlog/clickhouse"
	runlogmem "smartmoney-discovery/internal/runlog/memory"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Analyze and report without mutating the registry")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling run...\n", sig)
		cancel()
	}()

	trending := dexscreener.NewClient(cfg.TrendingBaseURL, dexscreener.WithLogger(logger))
	activity := chain.NewClient(cfg.IndexerRPCURL, chain.WithLogger(logger))

	var store registry.Store
	if cfg.PostgresDSN != "" {
		pool, err := registrypg.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Registry error: %v\n", err)
			os.Exit(1)
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
			fmt.Fprintf(os.Stderr, "Run log error: %v\n", err)
			os.Exit(1)
		}
		defer conn.Close()
		runLog = runlogch.NewStore(conn)
	} else {
		runLog = runlogmem.NewStore()
	}

	orch := discovery.New(discovery.Options{
		Trending: trending,
		Activity: activity,
		Registry: store,
		RunLog:   runLog,
		DryRun:   *dryRun,
		Logger:   logger,
	})

	fmt.Println("=== Wallet Discovery ===")
	result := orch.Run(ctx)

	fmt.Printf("Run completed:\n")
	fmt.Printf("  Hot tokens: %d\n", result.HotTokens)
	fmt.Printf("  Candidates: %d\n", result.Candidates)
	fmt.Printf("  Analyzed:   %d\n", result.Analyzed)
	fmt.Printf("  Qualified:  %d\n", result.Qualified)
	fmt.Printf("  Added:      %d\n", result.Added)
	fmt.Printf("  Pruned:     %d\n", result.Pruned)
	if result.ItemErrors > 0 {
		fmt.Printf("  Item errors: %d\n", result.ItemErrors)
	}
}

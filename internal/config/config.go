// Package config loads deployment configuration from the environment.
// Pipeline tunables (delays, caps, score weights, thresholds) are
// compile-time constants in their owning packages, not configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries deployment concerns only.
type Config struct {
	TrendingBaseURL string // trending-pairs API base URL
	IndexerRPCURL   string // wallet indexer JSON-RPC endpoint
	PostgresDSN     string // registry backend; empty selects the memory store
	ClickHouseDSN   string // run-log backend; empty selects the memory store
	CronSchedule    string // scheduler cadence, cron expression
	MetricsAddr     string // prometheus listen address
	LogLevel        string // zerolog level name
}

// Load reads configuration from an optional .env file and the process
// environment. Environment variables win over .env values.
func Load() (*Config, error) {
	// Missing .env is fine; running from the environment alone is normal.
	_ = godotenv.Load()

	cfg := &Config{
		TrendingBaseURL: getEnv("TRENDING_API_URL", "https://api.dexscreener.com"),
		IndexerRPCURL:   os.Getenv("INDEXER_RPC_URL"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		ClickHouseDSN:   os.Getenv("CLICKHOUSE_DSN"),
		CronSchedule:    getEnv("DISCOVERY_CRON", "0 */4 * * *"),
		MetricsAddr:     getEnv("METRICS_ADDR", ":9090"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.IndexerRPCURL == "" {
		return nil, fmt.Errorf("INDEXER_RPC_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

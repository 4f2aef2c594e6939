package discovery

import "time"

// Pipeline tunables. These are deliberately compile-time constants, not
// configuration: downstream score thresholds were tuned against them.
const (
	// TargetChain is the only chain the finder keeps pairs from.
	TargetChain = "solana"

	// Hot-token filters. A pair must clear all four.
	MinPriceChange24h = 50.0      // percent
	MinVolume24hUSD   = 10_000.0  // USD
	MinLiquidityUSD   = 1_000.0   // USD
	MaxPairAge        = 7 * 24 * time.Hour

	// MaxTokensToScan caps hot tokens per run.
	MaxTokensToScan = 10

	// EarlyBuyerWindow is the window after token creation in which a
	// purchase counts as early.
	EarlyBuyerWindow = 3600 * time.Second

	// MaxEarlyBuyersPerToken caps the per-token early-buyer lookup.
	MaxEarlyBuyersPerToken = 20

	// MaxCandidates caps the candidate pool per run.
	MaxCandidates = 50

	// RequestDelay is the pacing interval between external calls made
	// inside a loop.
	RequestDelay = 500 * time.Millisecond

	// MaxTradeHistory bounds the wallet trade-history fetch.
	MaxTradeHistory = 50

	// MinTrades is the minimum raw trade records required to score.
	MinTrades = 10

	// MinRoundTrips is the minimum completed round-trips required to score.
	MinRoundTrips = 3

	// MinWinRate is informational: surfaced in labels and logs, but
	// admission gates only on CompositeScore >= MinScoreThreshold.
	MinWinRate = 0.55

	// MinScoreThreshold is the composite-score admission floor.
	MinScoreThreshold = 60.0

	// MaxDiscoveredWallets caps learned registry entries.
	MaxDiscoveredWallets = 30

	// StalePruneAge is the learned-entry inactivity cutoff.
	StalePruneAge = 7 * 24 * time.Hour
)

// Composite score weights (sum to 100).
const (
	WeightWinRate     = 40.0
	WeightProfit      = 30.0
	WeightConsistency = 20.0
	WeightTradeCount  = 10.0
)

// Sub-score saturation points.
const (
	winRateSaturation   = 0.8  // 80% win rate scores 1.0
	profitSaturation    = 2.0  // avg multiple of 3x (1 + 2) scores 1.0
	roundTripSaturation = 20.0 // 20+ round-trips scores 1.0
)

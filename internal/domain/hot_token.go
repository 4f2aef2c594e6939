package domain

// TrendingPair is a validated trending-pairs entry as returned by the
// trending source. Numeric fields that were absent or malformed upstream
// are zero, which fails the hot-token filters.
type TrendingPair struct {
	ChainID        string  // chain identifier, e.g. "solana"
	Mint           string  // base token mint address
	Symbol         string  // base token symbol
	PriceChange24h float64 // 24h price change, percent
	Volume24h      float64 // 24h volume, USD
	LiquidityUSD   float64 // pool liquidity, USD
	PairCreatedAt  int64   // pair creation timestamp (ms)
}

// HotToken is a trending token that passed all hot-token filters.
// Produced fresh each discovery run; never persisted.
type HotToken struct {
	Mint           string
	Symbol         string
	PriceChange24h float64 // percent
	Volume24h      float64 // USD
	LiquidityUSD   float64 // USD
	PairCreatedAt  int64   // ms
}

package discovery

import (
	"context"
	"time"

	"smartmoney-discovery/internal/domain"
)

// TrendingSource provides trending-pairs snapshots from an external market
// data API.
type TrendingSource interface {
	// Search returns trending pairs matching query. Pairs may span chains;
	// the finder filters to TargetChain.
	Search(ctx context.Context, query string) ([]domain.TrendingPair, error)
}

// ActivitySource provides on-chain wallet activity from an external indexer.
type ActivitySource interface {
	// IsReady reports whether the indexer is healthy and caught up.
	IsReady(ctx context.Context) bool

	// TokenEarlyBuyers returns wallets that bought mint within window after
	// the token's creation, capped at limit.
	TokenEarlyBuyers(ctx context.Context, mint string, window time.Duration, limit int) ([]domain.EarlyBuyer, error)

	// WalletTrades returns up to limit recent trades for wallet.
	WalletTrades(ctx context.Context, wallet string, limit int) ([]domain.WalletTrade, error)
}

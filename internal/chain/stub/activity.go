package stub

import (
	"context"
	"errors"
	"time"

	"smartmoney-discovery/internal/domain"
)

// ErrUnavailable is returned for mints or wallets marked as failing.
var ErrUnavailable = errors.New("activity source unavailable")

// ActivitySource implements discovery.ActivitySource for testing.
// Fixture maps are keyed by mint (early buyers) and wallet (trades).
type ActivitySource struct {
	Ready       bool
	EarlyBuyers map[string][]domain.EarlyBuyer
	Trades      map[string][]domain.WalletTrade
	FailMints   map[string]bool
	FailWallets map[string]bool

	// Call records for assertions.
	EarlyBuyerCalls []string
	TradeCalls      []string
}

// NewActivitySource creates a new stub activity source.
func NewActivitySource() *ActivitySource {
	return &ActivitySource{
		Ready:       true,
		EarlyBuyers: make(map[string][]domain.EarlyBuyer),
		Trades:      make(map[string][]domain.WalletTrade),
		FailMints:   make(map[string]bool),
		FailWallets: make(map[string]bool),
	}
}

// IsReady reports the configured readiness.
func (s *ActivitySource) IsReady(_ context.Context) bool {
	return s.Ready
}

// TokenEarlyBuyers returns fixture buyers for mint, capped at limit.
func (s *ActivitySource) TokenEarlyBuyers(_ context.Context, mint string, _ time.Duration, limit int) ([]domain.EarlyBuyer, error) {
	s.EarlyBuyerCalls = append(s.EarlyBuyerCalls, mint)
	if s.FailMints[mint] {
		return nil, ErrUnavailable
	}

	buyers := s.EarlyBuyers[mint]
	if limit > 0 && limit < len(buyers) {
		return buyers[:limit], nil
	}
	return buyers, nil
}

// WalletTrades returns fixture trades for wallet, capped at limit.
func (s *ActivitySource) WalletTrades(_ context.Context, wallet string, limit int) ([]domain.WalletTrade, error) {
	s.TradeCalls = append(s.TradeCalls, wallet)
	if s.FailWallets[wallet] {
		return nil, ErrUnavailable
	}

	trades := s.Trades[wallet]
	if limit > 0 && limit < len(trades) {
		return trades[:limit], nil
	}
	return trades, nil
}

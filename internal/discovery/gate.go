package discovery

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/registry"
)

// RegistryGate mediates all pipeline access to the smart-money registry.
// It only ever creates learned entries and only ever removes learned
// entries; manual entries are never touched.
type RegistryGate struct {
	store  registry.Store
	clock  clockwork.Clock
	logger zerolog.Logger
}

// NewRegistryGate creates a gate over the given registry store.
func NewRegistryGate(store registry.Store, clock clockwork.Clock, logger zerolog.Logger) *RegistryGate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RegistryGate{store: store, clock: clock, logger: logger}
}

// IsTracked reports whether wallet is already registered, from any source.
// An errored lookup counts as tracked: the wallet is skipped this run
// rather than risking duplicate analysis and inserts.
func (g *RegistryGate) IsTracked(ctx context.Context, wallet string) bool {
	_, err := g.store.GetByWallet(ctx, wallet)
	if err == nil {
		return true
	}
	if errors.Is(err, registry.ErrNotFound) {
		return false
	}
	g.logger.Warn().Err(err).Str("wallet", wallet).Msg("registry lookup failed, treating as tracked")
	return true
}

// LearnedCount returns the current number of learned entries.
func (g *RegistryGate) LearnedCount(ctx context.Context) (int, error) {
	return g.store.CountBySource(ctx, domain.SourceLearned)
}

// InsertLearned adds a learned entry for wallet with the given label and
// discovery stats.
func (g *RegistryGate) InsertLearned(ctx context.Context, wallet, label string, stats domain.WalletStats) error {
	return g.store.Insert(ctx, &domain.RegistryEntry{
		Wallet:     wallet,
		Label:      label,
		Source:     domain.SourceLearned,
		WinRate:    stats.WinRate,
		LastActive: g.clock.Now().UnixMilli(),
	})
}

// PruneStale removes learned entries whose last activity is older than
// maxAge and returns the count removed. Manual entries are skipped without
// inspection. Per-entry removal failures are logged and skipped.
func (g *RegistryGate) PruneStale(ctx context.Context, maxAge time.Duration) int {
	entries, err := g.store.GetAll(ctx)
	if err != nil {
		g.logger.Warn().Err(err).Msg("registry enumeration failed, skipping prune")
		return 0
	}

	cutoff := g.clock.Now().Add(-maxAge).UnixMilli()
	pruned := 0
	for _, e := range entries {
		if e.Source != domain.SourceLearned {
			continue
		}
		if e.LastActive >= cutoff {
			continue
		}
		removed, err := g.store.Remove(ctx, e.Wallet)
		if err != nil {
			g.logger.Warn().Err(err).Str("wallet", e.Wallet).Msg("stale entry removal failed")
			continue
		}
		if removed {
			pruned++
			g.logger.Info().Str("wallet", e.Wallet).Int64("last_active", e.LastActive).
				Msg("pruned stale learned wallet")
		}
	}
	return pruned
}

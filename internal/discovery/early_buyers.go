package discovery

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/domain"
)

// EarlyBuyerAggregator collects early buyers across hot tokens and ranks
// wallets by how many distinct hot tokens they bought early.
type EarlyBuyerAggregator struct {
	activity ActivitySource
	pacer    *Pacer
	logger   zerolog.Logger
}

// NewEarlyBuyerAggregator creates an aggregator over the given activity
// source. The pacer is ticked after each per-token lookup.
func NewEarlyBuyerAggregator(activity ActivitySource, pacer *Pacer, logger zerolog.Logger) *EarlyBuyerAggregator {
	return &EarlyBuyerAggregator{activity: activity, pacer: pacer, logger: logger}
}

// CollectCandidates returns up to MaxCandidates candidate wallets sorted by
// cross-token early appearances descending. One token's lookup failure is
// logged and skipped; it never aborts the run. The returned error count
// reports absorbed per-token failures.
func (a *EarlyBuyerAggregator) CollectCandidates(ctx context.Context, tokens []domain.HotToken) ([]domain.CandidateWallet, int) {
	byWallet := make(map[string]map[string]struct{})
	itemErrors := 0

	for _, token := range tokens {
		buyers, err := a.activity.TokenEarlyBuyers(ctx, token.Mint, EarlyBuyerWindow, MaxEarlyBuyersPerToken)
		if err != nil {
			itemErrors++
			a.logger.Warn().Err(err).Str("mint", token.Mint).Str("symbol", token.Symbol).
				Msg("early buyer lookup failed, skipping token")
		} else {
			for _, b := range buyers {
				mints, ok := byWallet[b.Wallet]
				if !ok {
					mints = make(map[string]struct{})
					byWallet[b.Wallet] = mints
				}
				mints[token.Mint] = struct{}{}
			}
		}

		if err := a.pacer.Wait(ctx); err != nil {
			return nil, itemErrors
		}
	}

	candidates := make([]domain.CandidateWallet, 0, len(byWallet))
	for wallet, mints := range byWallet {
		candidates = append(candidates, domain.CandidateWallet{Wallet: wallet, Mints: mints})
	}

	// Sort by distinct-token appearances desc, wallet asc for determinism.
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].Mints) != len(candidates[j].Mints) {
			return len(candidates[i].Mints) > len(candidates[j].Mints)
		}
		return candidates[i].Wallet < candidates[j].Wallet
	})

	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	a.logger.Info().Int("tokens", len(tokens)).Int("candidates", len(candidates)).
		Msg("early buyer aggregation complete")
	return candidates, itemErrors
}

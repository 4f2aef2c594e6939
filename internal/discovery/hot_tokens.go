package discovery

import (
	"context"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/domain"
)

// trendingQuery targets the native-quote pairs the trending API indexes
// most densely for the target chain.
const trendingQuery = "SOL"

// HotTokenFinder filters a trending-pairs snapshot down to hot tokens.
type HotTokenFinder struct {
	trending TrendingSource
	clock    clockwork.Clock
	logger   zerolog.Logger
}

// NewHotTokenFinder creates a finder over the given trending source.
func NewHotTokenFinder(trending TrendingSource, clock clockwork.Clock, logger zerolog.Logger) *HotTokenFinder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HotTokenFinder{trending: trending, clock: clock, logger: logger}
}

// FindHotTokens returns up to MaxTokensToScan hot tokens, hottest first.
// A failed snapshot fetch yields an empty list, never an error.
func (f *HotTokenFinder) FindHotTokens(ctx context.Context) []domain.HotToken {
	pairs, err := f.trending.Search(ctx, trendingQuery)
	if err != nil {
		f.logger.Warn().Err(err).Msg("trending snapshot fetch failed")
		return nil
	}

	minCreatedAt := f.clock.Now().Add(-MaxPairAge).UnixMilli()

	var hot []domain.HotToken
	for _, p := range pairs {
		if !isHot(p, minCreatedAt) {
			continue
		}
		hot = append(hot, domain.HotToken{
			Mint:           p.Mint,
			Symbol:         p.Symbol,
			PriceChange24h: p.PriceChange24h,
			Volume24h:      p.Volume24h,
			LiquidityUSD:   p.LiquidityUSD,
			PairCreatedAt:  p.PairCreatedAt,
		})
	}

	sort.Slice(hot, func(i, j int) bool {
		return hot[i].PriceChange24h > hot[j].PriceChange24h
	})

	if len(hot) > MaxTokensToScan {
		hot = hot[:MaxTokensToScan]
	}

	f.logger.Info().Int("pairs", len(pairs)).Int("hot", len(hot)).Msg("hot token scan complete")
	return hot
}

// isHot applies the four hot-token filters. Zero-valued fields (absent or
// malformed upstream) fail their filter.
func isHot(p domain.TrendingPair, minCreatedAt int64) bool {
	if p.ChainID != TargetChain {
		return false
	}
	if p.PriceChange24h <= MinPriceChange24h {
		return false
	}
	if p.Volume24h <= MinVolume24hUSD {
		return false
	}
	if p.LiquidityUSD <= MinLiquidityUSD {
		return false
	}
	// Zero PairCreatedAt reads as ancient and fails the age filter.
	if p.PairCreatedAt < minCreatedAt {
		return false
	}
	return true
}

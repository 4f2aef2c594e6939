package discovery

import (
	"context"

	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/domain"
)

// Analyzer reconstructs completed round-trips from a wallet's trade history
// and computes its composite profitability score.
type Analyzer struct {
	activity ActivitySource
	logger   zerolog.Logger
}

// NewAnalyzer creates an analyzer over the given activity source.
func NewAnalyzer(activity ActivitySource, logger zerolog.Logger) *Analyzer {
	return &Analyzer{activity: activity, logger: logger}
}

// Analyze fetches up to MaxTradeHistory trades for wallet and scores them.
// Returns (nil, nil) when the wallet has too few trades or too few
// completed round-trips; an error only when the history fetch fails.
func (a *Analyzer) Analyze(ctx context.Context, wallet string) (*domain.WalletScore, error) {
	trades, err := a.activity.WalletTrades(ctx, wallet, MaxTradeHistory)
	if err != nil {
		return nil, err
	}

	if len(trades) < MinTrades {
		a.logger.Debug().Str("wallet", wallet).Int("trades", len(trades)).
			Msg("insufficient trade history")
		return nil, nil
	}

	roundTrips := reconstructRoundTrips(trades)
	if len(roundTrips) < MinRoundTrips {
		a.logger.Debug().Str("wallet", wallet).Int("round_trips", len(roundTrips)).
			Msg("insufficient completed round-trips")
		return nil, nil
	}

	score := scoreRoundTrips(wallet, roundTrips)
	a.logger.Debug().Str("wallet", wallet).
		Float64("score", score.Score).
		Float64("win_rate", score.WinRate).
		Int("round_trips", score.RoundTrips).
		Msg("wallet scored")
	return score, nil
}

// reconstructRoundTrips groups trades by mint and keeps only tokens with a
// valid entry (bought > 0) and at least one sell. Tokens with buys but no
// sells are open positions and are excluded entirely.
func reconstructRoundTrips(trades []domain.WalletTrade) []domain.RoundTrip {
	type totals struct {
		bought float64
		sold   float64
	}
	byMint := make(map[string]*totals)
	var order []string

	for _, t := range trades {
		if !t.Success || t.Mint == "" {
			continue
		}
		tot, ok := byMint[t.Mint]
		if !ok {
			tot = &totals{}
			byMint[t.Mint] = tot
			order = append(order, t.Mint)
		}
		switch t.Side {
		case domain.TradeSideBuy:
			tot.bought += t.AmountSOL
		case domain.TradeSideSell:
			tot.sold += t.AmountSOL
		}
	}

	var trips []domain.RoundTrip
	for _, mint := range order {
		tot := byMint[mint]
		if tot.bought <= 0 {
			continue // no valid entry point
		}
		if tot.sold <= 0 {
			continue // open position
		}
		trips = append(trips, domain.RoundTrip{
			Mint:        mint,
			TotalBought: tot.bought,
			TotalSold:   tot.sold,
			Multiple:    tot.sold / tot.bought,
		})
	}
	return trips
}

// scoreRoundTrips computes the composite score from completed round-trips.
func scoreRoundTrips(wallet string, trips []domain.RoundTrip) *domain.WalletScore {
	wins := 0
	multiples := make([]float64, len(trips))
	for i, rt := range trips {
		multiples[i] = rt.Multiple
		if rt.Multiple > 1.0 {
			wins++
		}
	}

	winRate := float64(wins) / float64(len(trips))
	avgMultiple := computeMean(multiples)
	consistency := computeConsistency(multiples, avgMultiple)

	winRateScore := clamp01(winRate / winRateSaturation)
	profitScore := clamp01((avgMultiple - 1) / profitSaturation)
	tradeCountScore := clamp01(float64(len(trips)) / roundTripSaturation)

	composite := winRateScore*WeightWinRate +
		profitScore*WeightProfit +
		consistency*WeightConsistency +
		tradeCountScore*WeightTradeCount

	return &domain.WalletScore{
		Wallet:      wallet,
		WinRate:     winRate,
		AvgMultiple: avgMultiple,
		RoundTrips:  len(trips),
		Consistency: consistency,
		Score:       composite,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

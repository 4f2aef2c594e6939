// Package discovery implements the organic wallet-discovery pipeline:
// hot-token scan → early-buyer aggregation → profitability scoring →
// bounded registry admission → stale pruning.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/observability"
	"smartmoney-discovery/internal/registry"
	"smartmoney-discovery/internal/runlog"
)

// Orchestrator drives one discovery pass. Each invocation is a stateless
// batch run; the only state crossing runs lives in the registry.
type Orchestrator struct {
	trending TrendingSource
	activity ActivitySource
	gate     *RegistryGate
	runLog   runlog.Store           // optional
	metrics  *observability.Metrics // optional
	clock    clockwork.Clock
	pacer    *Pacer
	dryRun   bool
	logger   zerolog.Logger
}

// Options for creating Orchestrator.
type Options struct {
	// Required collaborators
	Trending TrendingSource
	Activity ActivitySource
	Registry registry.Store

	// Optional
	RunLog  runlog.Store           // best-effort audit trail
	Metrics *observability.Metrics // nil disables instrumentation
	Clock   clockwork.Clock        // nil uses the real clock
	Pace    *Pacer                 // nil uses RequestDelay on Clock
	DryRun  bool                   // analyze and report without mutating the registry
	Logger  zerolog.Logger
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	pacer := opts.Pace
	if pacer == nil {
		pacer = NewPacer(RequestDelay, clock)
	}

	return &Orchestrator{
		trending: opts.Trending,
		activity: opts.Activity,
		gate:     NewRegistryGate(opts.Registry, clock, opts.Logger),
		runLog:   opts.RunLog,
		metrics:  opts.Metrics,
		clock:    clock,
		pacer:    pacer,
		dryRun:   opts.DryRun,
		logger:   opts.Logger,
	}
}

// RunResult contains results from one discovery pass.
type RunResult struct {
	HotTokens  int
	Candidates int
	Analyzed   int // candidates that produced a score
	Qualified  int // scores at or above the admission threshold
	Added      int
	Pruned     int
	ItemErrors int // per-item failures absorbed during the run
}

// DiscoverWallets runs one discovery pass and returns the count of wallets
// newly added to the registry. It never returns an error: whole-run
// precondition failures return 0, per-item failures are absorbed.
func (o *Orchestrator) DiscoverWallets(ctx context.Context) int {
	return o.Run(ctx).Added
}

// Run executes the full pipeline and returns the pass summary.
func (o *Orchestrator) Run(ctx context.Context) *RunResult {
	started := o.clock.Now()
	result := &RunResult{}
	defer func() {
		o.finish(ctx, started.UnixMilli(), result)
	}()

	// Precondition: the activity source must be caught up.
	if !o.activity.IsReady(ctx) {
		o.logger.Warn().Msg("activity source not ready, skipping discovery run")
		return result
	}

	finder := NewHotTokenFinder(o.trending, o.clock, o.logger)
	hot := finder.FindHotTokens(ctx)
	result.HotTokens = len(hot)
	if len(hot) == 0 {
		return result
	}

	aggregator := NewEarlyBuyerAggregator(o.activity, o.pacer, o.logger)
	candidates, itemErrors := aggregator.CollectCandidates(ctx, hot)
	result.ItemErrors += itemErrors
	result.Candidates = len(candidates)
	if len(candidates) == 0 {
		return result
	}

	scores := o.analyzeCandidates(ctx, candidates, result)
	result.Analyzed = len(scores)

	if o.dryRun {
		o.reportDryRun(scores, result)
		return result
	}

	result.Added = o.admit(ctx, scores, candidates, result)

	// Prune runs regardless of how many wallets were added this pass.
	result.Pruned = o.gate.PruneStale(ctx, StalePruneAge)

	o.logger.Info().
		Int("hot_tokens", result.HotTokens).
		Int("candidates", result.Candidates).
		Int("analyzed", result.Analyzed).
		Int("added", result.Added).
		Int("pruned", result.Pruned).
		Int("item_errors", result.ItemErrors).
		Msg("discovery run complete")
	return result
}

// analyzeCandidates scores candidates not already in the registry. The
// registry check runs before any trade-history fetch, so tracked wallets
// cost no API calls and no pacing delay.
func (o *Orchestrator) analyzeCandidates(ctx context.Context, candidates []domain.CandidateWallet, result *RunResult) []*domain.WalletScore {
	analyzer := NewAnalyzer(o.activity, o.logger)

	var scores []*domain.WalletScore
	for _, c := range candidates {
		if o.gate.IsTracked(ctx, c.Wallet) {
			continue
		}

		score, err := analyzer.Analyze(ctx, c.Wallet)
		if err != nil {
			result.ItemErrors++
			o.logger.Warn().Err(err).Str("wallet", c.Wallet).Msg("wallet analysis failed, skipping")
		} else if score != nil {
			scores = append(scores, score)
		}

		if err := o.pacer.Wait(ctx); err != nil {
			break
		}
	}
	return scores
}

// admit filters scores by the admission threshold, caps insertions at the
// remaining learned-slot capacity, and inserts the survivors.
func (o *Orchestrator) admit(ctx context.Context, scores []*domain.WalletScore, candidates []domain.CandidateWallet, result *RunResult) int {
	qualified := make([]*domain.WalletScore, 0, len(scores))
	for _, s := range scores {
		if s.Score >= MinScoreThreshold {
			qualified = append(qualified, s)
		}
	}
	result.Qualified = len(qualified)
	if len(qualified) == 0 {
		return 0
	}

	learned, err := o.gate.LearnedCount(ctx)
	if err != nil {
		result.ItemErrors++
		o.logger.Warn().Err(err).Msg("learned count unavailable, skipping insertions")
		return 0
	}

	slots := MaxDiscoveredWallets - learned
	if slots <= 0 {
		o.logger.Info().Int("learned", learned).Msg("registry at capacity, no insertions")
		return 0
	}

	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].Score != qualified[j].Score {
			return qualified[i].Score > qualified[j].Score
		}
		return qualified[i].Wallet < qualified[j].Wallet
	})
	if len(qualified) > slots {
		qualified = qualified[:slots]
	}

	earlyBuys := make(map[string]int, len(candidates))
	for _, c := range candidates {
		earlyBuys[c.Wallet] = len(c.Mints)
	}

	added := 0
	for _, s := range qualified {
		label := fmt.Sprintf("Auto-discovered: %.0f%% win rate, %d early buys",
			s.WinRate*100, earlyBuys[s.Wallet])
		err := o.gate.InsertLearned(ctx, s.Wallet, label, domain.WalletStats{
			WinRate:     s.WinRate,
			AvgMultiple: s.AvgMultiple,
			RoundTrips:  s.RoundTrips,
			EarlyBuys:   earlyBuys[s.Wallet],
		})
		if err != nil {
			if errors.Is(err, registry.ErrDuplicateKey) {
				// Another writer registered the wallet since the dedupe check.
				continue
			}
			result.ItemErrors++
			o.logger.Warn().Err(err).Str("wallet", s.Wallet).Msg("registry insert failed")
			continue
		}
		added++
		o.logger.Info().Str("wallet", s.Wallet).
			Float64("score", s.Score).
			Float64("win_rate", s.WinRate).
			Msg("learned wallet added")
	}
	return added
}

func (o *Orchestrator) reportDryRun(scores []*domain.WalletScore, result *RunResult) {
	for _, s := range scores {
		if s.Score < MinScoreThreshold {
			continue
		}
		result.Qualified++
		o.logger.Info().Str("wallet", s.Wallet).
			Float64("score", s.Score).
			Float64("win_rate", s.WinRate).
			Int("round_trips", s.RoundTrips).
			Msg("dry run: wallet would qualify")
	}
}

// finish records the run in the audit log and instrumentation. Failures
// here never change the pipeline result.
func (o *Orchestrator) finish(ctx context.Context, startedAt int64, result *RunResult) {
	finishedAt := o.clock.Now().UnixMilli()

	o.metrics.ObserveRun(
		float64(finishedAt-startedAt)/1000.0,
		result.Added, result.Pruned, result.Analyzed, result.ItemErrors,
	)

	if o.runLog == nil {
		return
	}
	run := &domain.DiscoveryRun{
		RunID:      runlog.ComputeRunID(startedAt, finishedAt, result.Added, result.Pruned),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		HotTokens:  result.HotTokens,
		Candidates: result.Candidates,
		Analyzed:   result.Analyzed,
		Added:      result.Added,
		Pruned:     result.Pruned,
		ItemErrors: result.ItemErrors,
		DryRun:     o.dryRun,
	}
	if err := o.runLog.Append(ctx, run); err != nil {
		o.logger.Warn().Err(err).Msg("run log append failed")
	}
}

package domain

// DiscoveryRun is the audit record of one pipeline invocation.
type DiscoveryRun struct {
	RunID      string // deterministic hash, see runlog.ComputeRunID
	StartedAt  int64  // ms
	FinishedAt int64  // ms
	HotTokens  int    // hot tokens scanned
	Candidates int    // candidate wallets considered
	Analyzed   int    // wallets that produced a score
	Added      int    // wallets inserted into the registry
	Pruned     int    // stale learned entries removed
	ItemErrors int    // per-item failures absorbed during the run
	DryRun     bool
}

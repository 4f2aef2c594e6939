package domain

// Source identifies how a registry entry was created.
type Source string

const (
	// SourceManual entries are added by operators and never touched by
	// the discovery pipeline.
	SourceManual Source = "manual"

	// SourceLearned entries are created by the discovery pipeline and are
	// the only entries it may remove.
	SourceLearned Source = "learned"
)

// RegistryEntry is one wallet in the smart-money registry.
type RegistryEntry struct {
	Wallet     string
	Label      string
	Source     Source
	WinRate    float64
	LastActive int64 // ms; refreshed in place by other writers
}

// WalletStats is the discovery summary attached to a learned entry at
// insert time.
type WalletStats struct {
	WinRate     float64
	AvgMultiple float64
	RoundTrips  int
	EarlyBuys   int // distinct hot tokens the wallet bought early
}

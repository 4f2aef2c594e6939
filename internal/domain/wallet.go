package domain

// TradeSide distinguishes buys from sells in wallet history.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// EarlyBuyer is one observation of a wallet buying a token within the
// early window after the token's creation.
type EarlyBuyer struct {
	Wallet      string  // buyer wallet address
	AmountSOL   float64 // native-currency amount transacted
	Timestamp   int64   // ms
	TxSignature string
}

// CandidateWallet is a wallet seen as an early buyer on one or more hot
// tokens. The mint set's cardinality is the candidate's priority signal.
type CandidateWallet struct {
	Wallet string
	Mints  map[string]struct{} // hot-token mints the wallet bought early
}

// WalletTrade is one raw trade record from a wallet's history, as supplied
// by the on-chain activity source.
type WalletTrade struct {
	TxSignature string
	Timestamp   int64 // ms
	Side        TradeSide
	Mint        string
	TokenAmount float64 // token units
	AmountSOL   float64 // native-currency amount
	Success     bool
	Venue       string // source DEX/venue
}

// RoundTrip is a completed buy-then-sell cycle in a single token by a
// single wallet. Tokens with buys but no sells are open positions and are
// never represented as round-trips.
type RoundTrip struct {
	Mint        string
	TotalBought float64 // SOL spent buying
	TotalSold   float64 // SOL received selling
	Multiple    float64 // TotalSold / TotalBought
}

// WalletScore is the scored result of analyzing one wallet's history.
// Ephemeral; computed once per run per candidate.
type WalletScore struct {
	Wallet      string
	WinRate     float64 // wins / completed round-trips
	AvgMultiple float64 // mean of completed round-trip multiples
	RoundTrips  int     // completed round-trips
	Consistency float64 // [0,1], penalizes multiple variance
	Score       float64 // composite, [0,100]
}

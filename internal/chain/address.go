package chain

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// ValidateAddress checks that s is a well-formed base58 Solana address:
// decodable, exactly 32 bytes. Wallet addresses must additionally be
// on-curve ed25519 points; PDAs (off-curve) are rejected for wallets.
func ValidateAddress(s string) error {
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("address must be 32 bytes, got %d", len(raw))
	}
	return nil
}

// ValidateWalletAddress checks that s is a valid on-curve wallet address.
func ValidateWalletAddress(s string) error {
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("decode wallet address: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("wallet address must be 32 bytes, got %d", len(raw))
	}
	if !isOnCurve(raw) {
		return fmt.Errorf("wallet address is off-curve")
	}
	return nil
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}

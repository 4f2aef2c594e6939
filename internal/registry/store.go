// Package registry defines storage for the smart-money wallet registry.
// The discovery pipeline only needs lookup, insert, remove, enumerate and a
// per-source count; everything else about registry persistence lives with
// its other consumers.
package registry

import (
	"context"
	"errors"

	"smartmoney-discovery/internal/domain"
)

var (
	// ErrNotFound is returned when a requested wallet does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a wallet that is already
	// registered.
	ErrDuplicateKey = errors.New("duplicate key: wallet already registered")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// Store provides access to smart-money registry storage.
type Store interface {
	// Insert adds a new entry. Returns ErrDuplicateKey if the wallet exists.
	Insert(ctx context.Context, e *domain.RegistryEntry) error

	// GetByWallet retrieves an entry. Returns ErrNotFound if not present.
	GetByWallet(ctx context.Context, wallet string) (*domain.RegistryEntry, error)

	// GetAll retrieves every entry, ordered by wallet ASC.
	GetAll(ctx context.Context) ([]*domain.RegistryEntry, error)

	// Remove deletes an entry. Returns false if the wallet was not present.
	Remove(ctx context.Context, wallet string) (bool, error)

	// CountBySource counts entries with the given source.
	CountBySource(ctx context.Context, source domain.Source) (int, error)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/registry"
)

// Store is an in-memory implementation of registry.Store.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.RegistryEntry // keyed by wallet
}

// NewStore creates a new in-memory registry store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RegistryEntry),
	}
}

// Compile-time interface check.
var _ registry.Store = (*Store)(nil)

// Insert adds a new entry. Returns ErrDuplicateKey if the wallet exists.
func (s *Store) Insert(_ context.Context, e *domain.RegistryEntry) error {
	if e == nil || e.Wallet == "" {
		return registry.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.Wallet]; exists {
		return registry.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	entryCopy := *e
	s.data[e.Wallet] = &entryCopy
	return nil
}

// GetByWallet retrieves an entry. Returns ErrNotFound if not present.
func (s *Store) GetByWallet(_ context.Context, wallet string) (*domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.data[wallet]
	if !exists {
		return nil, registry.ErrNotFound
	}

	entryCopy := *e
	return &entryCopy, nil
}

// GetAll retrieves every entry, ordered by wallet ASC.
func (s *Store) GetAll(_ context.Context) ([]*domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RegistryEntry, 0, len(s.data))
	for _, e := range s.data {
		entryCopy := *e
		result = append(result, &entryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Wallet < result[j].Wallet
	})

	return result, nil
}

// Remove deletes an entry. Returns false if the wallet was not present.
func (s *Store) Remove(_ context.Context, wallet string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[wallet]; !exists {
		return false, nil
	}
	delete(s.data, wallet)
	return true, nil
}

// CountBySource counts entries with the given source.
func (s *Store) CountBySource(_ context.Context, source domain.Source) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.data {
		if e.Source == source {
			count++
		}
	}
	return count, nil
}

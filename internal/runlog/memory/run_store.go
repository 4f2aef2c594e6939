package memory

import (
	"context"
	"sync"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/runlog"
)

// Store is an in-memory implementation of runlog.Store.
type Store struct {
	mu   sync.RWMutex
	runs []*domain.DiscoveryRun // append order, oldest first
}

// NewStore creates a new in-memory run store.
func NewStore() *Store {
	return &Store{}
}

// Compile-time interface check.
var _ runlog.Store = (*Store)(nil)

// Append records one finished run.
func (s *Store) Append(_ context.Context, run *domain.DiscoveryRun) error {
	if run == nil || run.RunID == "" {
		return runlog.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runCopy := *run
	s.runs = append(s.runs, &runCopy)
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(_ context.Context, limit int) ([]*domain.DiscoveryRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.runs) {
		limit = len(s.runs)
	}

	result := make([]*domain.DiscoveryRun, 0, limit)
	for i := len(s.runs) - 1; i >= 0 && len(result) < limit; i-- {
		runCopy := *s.runs[i]
		result = append(result, &runCopy)
	}
	return result, nil
}

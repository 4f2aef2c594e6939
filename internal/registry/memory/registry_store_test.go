package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/registry"
)

func TestRegistryStore_InsertAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	e := &domain.RegistryEntry{
		Wallet:     "wallet1",
		Label:      "Auto-discovered: 80% win rate, 3 early buys",
		Source:     domain.SourceLearned,
		WinRate:    0.8,
		LastActive: 1704067200000,
	}

	if err := store.Insert(ctx, e); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByWallet(ctx, "wallet1")
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}

	if got.Label != e.Label {
		t.Errorf("Label mismatch: got %s, want %s", got.Label, e.Label)
	}
	if got.Source != domain.SourceLearned {
		t.Errorf("Source mismatch: got %s, want %s", got.Source, domain.SourceLearned)
	}
	if got.WinRate != e.WinRate {
		t.Errorf("WinRate mismatch: got %f, want %f", got.WinRate, e.WinRate)
	}
}

func TestRegistryStore_DuplicateKey(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	e := &domain.RegistryEntry{Wallet: "wallet1", Source: domain.SourceManual}

	if err := store.Insert(ctx, e); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, e)
	if !errors.Is(err, registry.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestRegistryStore_NotFound(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.GetByWallet(ctx, "nonexistent")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRegistryStore_GetAllOrdered(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	wallets := []string{"charlie", "alpha", "bravo"}
	for _, w := range wallets {
		err := store.Insert(ctx, &domain.RegistryEntry{Wallet: w, Source: domain.SourceManual})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}

	want := []string{"alpha", "bravo", "charlie"}
	for i, w := range want {
		if all[i].Wallet != w {
			t.Errorf("Position %d: got %s, want %s", i, all[i].Wallet, w)
		}
	}
}

func TestRegistryStore_Remove(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Insert(ctx, &domain.RegistryEntry{Wallet: "wallet1", Source: domain.SourceLearned})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	removed, err := store.Remove(ctx, "wallet1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Error("Expected removed=true for existing wallet")
	}

	removed, err = store.Remove(ctx, "wallet1")
	if err != nil {
		t.Fatalf("Second remove failed: %v", err)
	}
	if removed {
		t.Error("Expected removed=false for missing wallet")
	}

	if _, err := store.GetByWallet(ctx, "wallet1"); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after remove, got %v", err)
	}
}

func TestRegistryStore_CountBySource(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	entries := []*domain.RegistryEntry{
		{Wallet: "w1", Source: domain.SourceManual},
		{Wallet: "w2", Source: domain.SourceLearned},
		{Wallet: "w3", Source: domain.SourceLearned},
	}
	for _, e := range entries {
		if err := store.Insert(ctx, e); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	count, err := store.CountBySource(ctx, domain.SourceLearned)
	if err != nil {
		t.Fatalf("CountBySource failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 learned entries, got %d", count)
	}

	count, err = store.CountBySource(ctx, domain.SourceManual)
	if err != nil {
		t.Fatalf("CountBySource failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 manual entry, got %d", count)
	}
}

func TestRegistryStore_CopyOnRead(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Insert(ctx, &domain.RegistryEntry{Wallet: "wallet1", Label: "original", Source: domain.SourceManual})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByWallet(ctx, "wallet1")
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}
	got.Label = "mutated"

	again, err := store.GetByWallet(ctx, "wallet1")
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}
	if again.Label != "original" {
		t.Errorf("Stored entry mutated through returned pointer: got %s", again.Label)
	}
}

func TestRegistryStore_ConcurrentInserts(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	numGoroutines := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			e := &domain.RegistryEntry{
				Wallet: fmt.Sprintf("wallet-%d", id),
				Source: domain.SourceLearned,
			}
			_ = store.Insert(ctx, e)
		}(i)
	}

	wg.Wait()

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != numGoroutines {
		t.Errorf("Expected %d entries, got %d", numGoroutines, len(all))
	}
}

func TestRegistryStore_InvalidInput(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Insert(ctx, nil)
	if !errors.Is(err, registry.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	err = store.Insert(ctx, &domain.RegistryEntry{Wallet: ""})
	if !errors.Is(err, registry.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty wallet, got %v", err)
	}
}

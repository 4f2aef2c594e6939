package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/runlog"
)

func TestRunStore_AppendAndRecent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := &domain.DiscoveryRun{
			RunID:      fmt.Sprintf("run-%d", i),
			StartedAt:  int64(1000 * (i + 1)),
			FinishedAt: int64(1000*(i+1) + 500),
			HotTokens:  i,
			Added:      i,
		}
		if err := store.Append(ctx, run); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].RunID != "run-2" {
		t.Errorf("First result should be run-2, got %s", runs[0].RunID)
	}
	if runs[1].RunID != "run-1" {
		t.Errorf("Second result should be run-1, got %s", runs[1].RunID)
	}
}

func TestRunStore_RecentLimitExceedsCount(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Append(ctx, &domain.DiscoveryRun{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	runs, err := store.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}
}

func TestRunStore_RecentEmpty(t *testing.T) {
	store := NewStore()

	runs, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}

func TestRunStore_InvalidInput(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Append(ctx, nil)
	if !errors.Is(err, runlog.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	err = store.Append(ctx, &domain.DiscoveryRun{RunID: ""})
	if !errors.Is(err, runlog.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty run_id, got %v", err)
	}
}

func TestRunStore_CopyOnAppend(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	run := &domain.DiscoveryRun{RunID: "run-1", Added: 1}
	if err := store.Append(ctx, run); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	run.Added = 99

	runs, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if runs[0].Added != 1 {
		t.Errorf("Stored run mutated through caller pointer: got %d", runs[0].Added)
	}
}

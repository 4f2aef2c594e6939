// Package runlog stores the audit trail of discovery runs. Appends are
// best-effort: a run-log failure must never change a pipeline result.
package runlog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"smartmoney-discovery/internal/domain"
)

// ErrInvalidInput is returned when input validation fails.
var ErrInvalidInput = errors.New("invalid input")

// Store provides append and recent-history access to discovery runs.
type Store interface {
	// Append records one finished run.
	Append(ctx context.Context, run *domain.DiscoveryRun) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.DiscoveryRun, error)
}

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(started_at|finished_at|added|pruned)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(startedAt, finishedAt int64, added, pruned int) string {
	data := fmt.Sprintf("%d|%d|%d|%d", startedAt, finishedAt, added, pruned)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

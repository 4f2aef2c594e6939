package clickhouse

import (
	"context"
	"fmt"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/runlog"
)

// Store implements runlog.Store using ClickHouse.
type Store struct {
	conn *Conn
}

// NewStore creates a new Store.
func NewStore(conn *Conn) *Store {
	return &Store{conn: conn}
}

// Compile-time interface check.
var _ runlog.Store = (*Store)(nil)

// Append records one finished run.
func (s *Store) Append(ctx context.Context, run *domain.DiscoveryRun) error {
	if run == nil || run.RunID == "" {
		return runlog.ErrInvalidInput
	}

	query := `
		INSERT INTO discovery_runs (
			run_id, started_at, finished_at, hot_tokens, candidates,
			analyzed, added, pruned, item_errors, dry_run
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		run.RunID,
		uint64(run.StartedAt),
		uint64(run.FinishedAt),
		uint32(run.HotTokens),
		uint32(run.Candidates),
		uint32(run.Analyzed),
		uint32(run.Added),
		uint32(run.Pruned),
		uint32(run.ItemErrors),
		run.DryRun,
	)
	if err != nil {
		return fmt.Errorf("insert discovery run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*domain.DiscoveryRun, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT run_id, started_at, finished_at, hot_tokens, candidates,
		       analyzed, added, pruned, item_errors, dry_run
		FROM discovery_runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query discovery runs: %w", err)
	}
	defer rows.Close()

	var result []*domain.DiscoveryRun
	for rows.Next() {
		var r domain.DiscoveryRun
		var startedAt, finishedAt uint64
		var hotTokens, candidates, analyzed, added, pruned, itemErrors uint32

		err := rows.Scan(&r.RunID, &startedAt, &finishedAt, &hotTokens,
			&candidates, &analyzed, &added, &pruned, &itemErrors, &r.DryRun)
		if err != nil {
			return nil, fmt.Errorf("scan discovery run: %w", err)
		}

		r.StartedAt = int64(startedAt)
		r.FinishedAt = int64(finishedAt)
		r.HotTokens = int(hotTokens)
		r.Candidates = int(candidates)
		r.Analyzed = int(analyzed)
		r.Added = int(added)
		r.Pruned = int(pruned)
		r.ItemErrors = int(itemErrors)
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discovery runs: %w", err)
	}
	return result, nil
}

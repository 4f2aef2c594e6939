package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"smartmoney-discovery/internal/domain"
	"smartmoney-discovery/internal/registry"
)

// Store implements registry.Store using PostgreSQL.
type Store struct {
	pool *Pool
}

// NewStore creates a new Store.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Compile-time interface check.
var _ registry.Store = (*Store)(nil)

// Insert adds a new entry. Returns ErrDuplicateKey if the wallet exists.
func (s *Store) Insert(ctx context.Context, e *domain.RegistryEntry) error {
	if e == nil || e.Wallet == "" {
		return registry.ErrInvalidInput
	}

	query := `
		INSERT INTO smart_wallets (
			wallet, label, source, win_rate, last_active
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		e.Wallet,
		e.Label,
		string(e.Source),
		e.WinRate,
		e.LastActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return registry.ErrDuplicateKey
		}
		return fmt.Errorf("insert registry entry: %w", err)
	}
	return nil
}

// GetByWallet retrieves an entry. Returns ErrNotFound if not present.
func (s *Store) GetByWallet(ctx context.Context, wallet string) (*domain.RegistryEntry, error) {
	query := `
		SELECT wallet, label, source, win_rate, last_active
		FROM smart_wallets
		WHERE wallet = $1
	`

	row := s.pool.QueryRow(ctx, query, wallet)
	e, err := scanEntry(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, registry.ErrNotFound
		}
		return nil, fmt.Errorf("get registry entry: %w", err)
	}
	return e, nil
}

// GetAll retrieves every entry, ordered by wallet ASC.
func (s *Store) GetAll(ctx context.Context) ([]*domain.RegistryEntry, error) {
	query := `
		SELECT wallet, label, source, win_rate, last_active
		FROM smart_wallets
		ORDER BY wallet ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all registry entries: %w", err)
	}
	defer rows.Close()

	var result []*domain.RegistryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registry entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registry entries: %w", err)
	}
	return result, nil
}

// Remove deletes an entry. Returns false if the wallet was not present.
func (s *Store) Remove(ctx context.Context, wallet string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM smart_wallets WHERE wallet = $1`, wallet)
	if err != nil {
		return false, fmt.Errorf("remove registry entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountBySource counts entries with the given source.
func (s *Store) CountBySource(ctx context.Context, source domain.Source) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM smart_wallets WHERE source = $1`,
		string(source),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registry entries: %w", err)
	}
	return count, nil
}

// scanEntry scans a single registry entry from a row.
func scanEntry(row pgx.Row) (*domain.RegistryEntry, error) {
	var e domain.RegistryEntry
	var source string

	err := row.Scan(&e.Wallet, &e.Label, &source, &e.WinRate, &e.LastActive)
	if err != nil {
		return nil, err
	}

	e.Source = domain.Source(source)
	return &e, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"assetgate/internal/identity/storage"
	"assetgate/pkg/domain"
	"assetgate/pkg/platform/sentinel"
	txcontext "assetgate/pkg/platform/tx"

	"github.com/lib/pq"
)

// Schema creates the identity record table. Applied by Migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS identity_records (
	holder     TEXT PRIMARY KEY,
	identity   TEXT NOT NULL,
	country    INTEGER NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const uniqueViolation = "23505"

// PostgresStore persists identity records with lib/pq. Addresses are stored as
// checksummed hex.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate identity records: %w", err)
	}
	return nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Get(ctx context.Context, holder domain.Address) (storage.Record, error) {
	var (
		identity string
		country  int
	)
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT identity, country FROM identity_records WHERE holder = $1`,
		holder.Hex(),
	).Scan(&identity, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Record{}, sentinel.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("find identity record: %w", err)
	}
	id, err := domain.ParseAddress(identity)
	if err != nil {
		return storage.Record{}, fmt.Errorf("decode stored identity: %w", err)
	}
	return storage.Record{Holder: holder, Identity: id, Country: domain.Country(country)}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec storage.Record) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`INSERT INTO identity_records (holder, identity, country) VALUES ($1, $2, $3)`,
		rec.Holder.Hex(), rec.Identity.Hex(), int(rec.Country),
	)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert identity record: %w", err)
	}
	return nil
}

// InsertBatch inserts every record in one transaction.
func (s *PostgresStore) InsertBatch(ctx context.Context, recs []storage.Record) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		for _, rec := range recs {
			if err := s.Insert(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) Update(ctx context.Context, rec storage.Record) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE identity_records SET identity = $2, country = $3, updated_at = NOW() WHERE holder = $1`,
		rec.Holder.Hex(), rec.Identity.Hex(), int(rec.Country),
	)
	if err != nil {
		return fmt.Errorf("update identity record: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, holder domain.Address) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM identity_records WHERE holder = $1`,
		holder.Hex(),
	)
	if err != nil {
		return fmt.Errorf("delete identity record: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM identity_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count identity records: %w", err)
	}
	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

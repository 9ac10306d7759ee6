package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	txcontext "assetgate/pkg/platform/tx"

	"github.com/google/uuid"
)

// Schema creates the outbox table. Applied by Migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_outbox (
	id             UUID PRIMARY KEY,
	sequence       BIGINT NOT NULL UNIQUE,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	payload        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	published_at   TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS audit_outbox_unpublished ON audit_outbox (sequence) WHERE published_at IS NULL;
`

// Store implements audit.Outbox using the transactional outbox pattern.
// Events are written to the outbox table and forwarded to Kafka by the relay.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate audit outbox: %w", err)
	}
	return nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append writes an audit event to the outbox table.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	// Events are grouped by the address they are about; component-level
	// events (pause, module changes) fall back to the emitting component.
	aggregateType := "subject"
	aggregateID := event.Subject.Hex()
	if event.Subject == domain.ZeroAddress {
		aggregateType = "component"
		aggregateID = event.Source.Hex()
	}

	query := `
		INSERT INTO audit_outbox (id, sequence, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		int64(event.Sequence),
		aggregateType,
		aggregateID,
		event.Action,
		payload,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// ListSince returns up to limit events with a sequence greater than after.
func (s *Store) ListSince(ctx context.Context, after uint64, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 1000
	}
	query := `
		SELECT payload FROM audit_outbox
		WHERE sequence > $1
		ORDER BY sequence ASC
		LIMIT $2
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, int64(after), limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// LastSequence returns the highest stored sequence, or zero for an empty outbox.
func (s *Store) LastSequence(ctx context.Context) (uint64, error) {
	var last sql.NullInt64
	err := s.execer(ctx).QueryRowContext(ctx, `SELECT MAX(sequence) FROM audit_outbox`).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("query last audit sequence: %w", err)
	}
	if !last.Valid {
		return 0, nil
	}
	return uint64(last.Int64), nil
}

// ListUnpublished returns the oldest events not yet forwarded by the relay.
func (s *Store) ListUnpublished(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT payload FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY sequence ASC
		LIMIT $1
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unpublished audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// MarkPublished stamps every event up to and including upTo as forwarded.
func (s *Store) MarkPublished(ctx context.Context, upTo uint64) error {
	query := `
		UPDATE audit_outbox SET published_at = NOW()
		WHERE sequence <= $1 AND published_at IS NULL
	`
	if _, err := s.execer(ctx).ExecContext(ctx, query, int64(upTo)); err != nil {
		return fmt.Errorf("mark audit events published: %w", err)
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		var event audit.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

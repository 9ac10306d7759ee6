package storage

import (
	"context"

	"assetgate/pkg/domain"
)

// Record links a holder wallet to its identity and country.
// Invariant: Holder and Identity are non-zero; one record per holder.
type Record struct {
	Holder   domain.Address
	Identity domain.Address
	Country  domain.Country
}

// RecordStore persists identity records. Implementations return
// sentinel.ErrNotFound for unknown holders and sentinel.ErrConflict when a
// holder is already stored. InsertBatch is all-or-nothing.
type RecordStore interface {
	Get(ctx context.Context, holder domain.Address) (Record, error)
	Insert(ctx context.Context, rec Record) error
	InsertBatch(ctx context.Context, recs []Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, holder domain.Address) error
	Count(ctx context.Context) (int, error)
}

// Package storage is the identity registry storage: holder records shared by
// every identity registry bound to it.
//
// Writes are accepted only from bound registries and are serialized, so a
// write through one registry is immediately visible through all of them.
// Unbinding a registry removes the backref only; the registry keeps its own
// pointer and its later writes fail with registry_not_bound.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"assetgate/internal/access"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/platform/sentinel"
)

// MaxBoundRegistries bounds how many registries may share one storage.
const MaxBoundRegistries = 300

// Storage owns the holder records and the set of registries allowed to write.
type Storage struct {
	*access.Ownable

	writeMu sync.Mutex
	bindMu  sync.RWMutex
	bound   []domain.Address

	store   RecordStore
	logger  *slog.Logger
	emitter audit.Emitter
}

// Option configures the Storage.
type Option func(*Storage)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(s *Storage) {
		s.emitter = emitter
	}
}

// New creates a storage at address owned by owner, persisting to store.
func New(address, owner domain.Address, store RecordStore, opts ...Option) (*Storage, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "record store is required")
	}
	s := &Storage{store: store}
	for _, opt := range opts {
		opt(s)
	}
	ownable, err := access.NewOwnable(address, owner, access.WithLogger(s.logger), access.WithAuditPublisher(s.emitter))
	if err != nil {
		return nil, err
	}
	s.Ownable = ownable
	return s, nil
}

func (s *Storage) Address() domain.Address {
	return s.Component()
}

// BindIdentityRegistry allows registry to write. Owner only.
func (s *Storage) BindIdentityRegistry(ctx context.Context, caller, registry domain.Address) error {
	if err := s.RequireOwner(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(registry, "identity registry"); err != nil {
		return err
	}

	s.bindMu.Lock()
	if slices.Contains(s.bound, registry) {
		s.bindMu.Unlock()
		return dErrors.New(dErrors.CodeAlreadyBound, "identity registry already bound")
	}
	if len(s.bound) >= MaxBoundRegistries {
		s.bindMu.Unlock()
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot bind more than %d identity registries", MaxBoundRegistries)
	}
	s.bound = append(s.bound, registry)
	s.bindMu.Unlock()

	s.logAudit(ctx, audit.Event{Action: string(audit.EventIdentityRegistryBound), Actor: caller, Counterparty: registry})
	return nil
}

// UnbindIdentityRegistry revokes registry's write access. Owner only.
func (s *Storage) UnbindIdentityRegistry(ctx context.Context, caller, registry domain.Address) error {
	if err := s.RequireOwner(caller); err != nil {
		return err
	}

	s.bindMu.Lock()
	i := slices.Index(s.bound, registry)
	if i < 0 {
		s.bindMu.Unlock()
		return dErrors.New(dErrors.CodeRegistryNotBound, "identity registry is not bound")
	}
	s.bound = slices.Delete(s.bound, i, i+1)
	s.bindMu.Unlock()

	s.logAudit(ctx, audit.Event{Action: string(audit.EventIdentityRegistryUnbound), Actor: caller, Counterparty: registry})
	return nil
}

// LinkedIdentityRegistries returns the bound registries in bind order.
func (s *Storage) LinkedIdentityRegistries() []domain.Address {
	s.bindMu.RLock()
	defer s.bindMu.RUnlock()
	return slices.Clone(s.bound)
}

func (s *Storage) IsBound(registry domain.Address) bool {
	s.bindMu.RLock()
	defer s.bindMu.RUnlock()
	return slices.Contains(s.bound, registry)
}

func (s *Storage) requireBound(registry domain.Address) error {
	if !s.IsBound(registry) {
		return dErrors.New(dErrors.CodeRegistryNotBound, "caller is not a bound identity registry")
	}
	return nil
}

// AddIdentityToStorage stores a new record. Bound registries only.
func (s *Storage) AddIdentityToStorage(ctx context.Context, registry domain.Address, rec Record) error {
	if err := s.requireBound(registry); err != nil {
		return err
	}
	if err := validateRecord(rec); err != nil {
		return err
	}

	s.writeMu.Lock()
	err := s.store.Insert(ctx, rec)
	s.writeMu.Unlock()
	if err != nil {
		return translate(err, "store identity")
	}

	s.logAudit(ctx, audit.Event{
		Action:       string(audit.EventIdentityStored),
		Actor:        registry,
		Subject:      rec.Holder,
		Counterparty: rec.Identity,
		Country:      rec.Country,
	})
	return nil
}

// AddIdentitiesToStorage stores every record or none. Bound registries only.
func (s *Storage) AddIdentitiesToStorage(ctx context.Context, registry domain.Address, recs []Record) error {
	if err := s.requireBound(registry); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := validateRecord(rec); err != nil {
			return err
		}
	}

	s.writeMu.Lock()
	err := s.store.InsertBatch(ctx, recs)
	s.writeMu.Unlock()
	if err != nil {
		return translate(err, "store identities")
	}

	for _, rec := range recs {
		s.logAudit(ctx, audit.Event{
			Action:       string(audit.EventIdentityStored),
			Actor:        registry,
			Subject:      rec.Holder,
			Counterparty: rec.Identity,
			Country:      rec.Country,
		})
	}
	return nil
}

// ModifyStoredIdentity replaces the identity of holder. Bound registries only.
func (s *Storage) ModifyStoredIdentity(ctx context.Context, registry, holder, identity domain.Address) error {
	if err := s.requireBound(registry); err != nil {
		return err
	}
	if err := domain.RequireNonZero(identity, "identity"); err != nil {
		return err
	}
	var old Record
	err := s.modify(ctx, holder, func(rec *Record) {
		old = *rec
		rec.Identity = identity
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, audit.Event{
		Action:       string(audit.EventIdentityUpdated),
		Actor:        registry,
		Subject:      old.Identity,
		Counterparty: identity,
	})
	return nil
}

// ModifyStoredInvestorCountry replaces the country of holder. Bound
// registries only.
func (s *Storage) ModifyStoredInvestorCountry(ctx context.Context, registry, holder domain.Address, country domain.Country) error {
	if err := s.requireBound(registry); err != nil {
		return err
	}
	if !country.IsValid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "country code %d out of range", country)
	}
	if err := s.modify(ctx, holder, func(rec *Record) { rec.Country = country }); err != nil {
		return err
	}
	s.logAudit(ctx, audit.Event{
		Action:  string(audit.EventCountryUpdated),
		Actor:   registry,
		Subject: holder,
		Country: country,
	})
	return nil
}

// RemoveIdentityFromStorage deletes holder's record. Bound registries only.
func (s *Storage) RemoveIdentityFromStorage(ctx context.Context, registry, holder domain.Address) error {
	if err := s.requireBound(registry); err != nil {
		return err
	}

	s.writeMu.Lock()
	rec, err := s.store.Get(ctx, holder)
	if err == nil {
		err = s.store.Delete(ctx, holder)
	}
	s.writeMu.Unlock()
	if err != nil {
		return translate(err, "remove identity")
	}

	s.logAudit(ctx, audit.Event{
		Action:       string(audit.EventIdentityUnstored),
		Actor:        registry,
		Subject:      holder,
		Counterparty: rec.Identity,
	})
	return nil
}

func (s *Storage) modify(ctx context.Context, holder domain.Address, fn func(*Record)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	rec, err := s.store.Get(ctx, holder)
	if err != nil {
		return translate(err, "load identity")
	}
	fn(&rec)
	if err := s.store.Update(ctx, rec); err != nil {
		return translate(err, "update identity")
	}
	return nil
}

// StoredRecord returns holder's record.
func (s *Storage) StoredRecord(ctx context.Context, holder domain.Address) (Record, error) {
	rec, err := s.store.Get(ctx, holder)
	if err != nil {
		return Record{}, translate(err, "load identity")
	}
	return rec, nil
}

// StoredIdentity returns the identity linked to holder.
func (s *Storage) StoredIdentity(ctx context.Context, holder domain.Address) (domain.Address, error) {
	rec, err := s.StoredRecord(ctx, holder)
	return rec.Identity, err
}

// StoredInvestorCountry returns holder's country.
func (s *Storage) StoredInvestorCountry(ctx context.Context, holder domain.Address) (domain.Country, error) {
	rec, err := s.StoredRecord(ctx, holder)
	return rec.Country, err
}

// Count returns how many holders are stored.
func (s *Storage) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "count identities")
	}
	return n, nil
}

func validateRecord(rec Record) error {
	if err := domain.RequireNonZero(rec.Holder, "holder"); err != nil {
		return err
	}
	if err := domain.RequireNonZero(rec.Identity, "identity"); err != nil {
		return err
	}
	if !rec.Country.IsValid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "country code %d out of range", rec.Country)
	}
	return nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotRegistered, "holder is not registered")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeAlreadyRegistered, "holder is already registered")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, op)
	}
}

func (s *Storage) logAudit(ctx context.Context, event audit.Event) {
	event.Source = s.Address()
	audit.Log(ctx, s.logger, s.emitter, event)
}

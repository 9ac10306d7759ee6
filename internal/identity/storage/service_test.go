package storage_test

import (
	"context"
	"sync"
	"testing"

	"assetgate/internal/identity/storage"
	"assetgate/internal/identity/storage/store"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/testutil"

	"github.com/stretchr/testify/suite"
)

var (
	storageAddr = domain.DeriveAddress("identity-storage")
	owner       = domain.DeriveAddress("owner")
	registryA   = domain.DeriveAddress("registry-a")
	registryB   = domain.DeriveAddress("registry-b")
	holder      = domain.DeriveAddress("holder")
	identity    = domain.DeriveAddress("identity")
)

type StorageSuite struct {
	suite.Suite
	ctx     context.Context
	emitter *testutil.RecordingEmitter
	storage *storage.Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.emitter = &testutil.RecordingEmitter{}
	st, err := storage.New(storageAddr, owner, store.NewInMemory(), storage.WithAuditPublisher(s.emitter))
	s.Require().NoError(err)
	s.storage = st
	s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, registryA))
}

func (s *StorageSuite) record() storage.Record {
	return storage.Record{Holder: holder, Identity: identity, Country: domain.Country(250)}
}

func (s *StorageSuite) TestBinding() {
	s.Run("owner binds a second registry", func() {
		s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, registryB))
		s.Equal([]domain.Address{registryA, registryB}, s.storage.LinkedIdentityRegistries())
		s.Equal(string(audit.EventIdentityRegistryBound), s.emitter.Last().Action)
	})

	s.Run("binding twice fails", func() {
		err := s.storage.BindIdentityRegistry(s.ctx, owner, registryA)
		s.True(dErrors.Is(err, dErrors.CodeAlreadyBound))
	})

	s.Run("non-owner cannot bind", func() {
		err := s.storage.BindIdentityRegistry(s.ctx, registryA, domain.DeriveAddress("x"))
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
	})

	s.Run("zero registry rejected", func() {
		err := s.storage.BindIdentityRegistry(s.ctx, owner, domain.ZeroAddress)
		s.True(dErrors.Is(err, dErrors.CodeZeroAddress))
	})

	s.Run("unbind removes only the backref", func() {
		s.Require().NoError(s.storage.UnbindIdentityRegistry(s.ctx, owner, registryB))
		s.False(s.storage.IsBound(registryB))
		s.True(s.storage.IsBound(registryA))

		err := s.storage.UnbindIdentityRegistry(s.ctx, owner, registryB)
		s.True(dErrors.Is(err, dErrors.CodeRegistryNotBound))
	})
}

func (s *StorageSuite) TestBindCapacity() {
	for i := 1; i < storage.MaxBoundRegistries; i++ {
		s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, domain.NewComponentAddress()))
	}
	err := s.storage.BindIdentityRegistry(s.ctx, owner, domain.NewComponentAddress())
	s.True(dErrors.Is(err, dErrors.CodeCapacityExceeded))
}

func (s *StorageSuite) TestWrites() {
	s.Run("unbound registry cannot write", func() {
		err := s.storage.AddIdentityToStorage(s.ctx, registryB, s.record())
		s.True(dErrors.Is(err, dErrors.CodeRegistryNotBound))
	})

	s.Run("bound registry stores a record", func() {
		s.Require().NoError(s.storage.AddIdentityToStorage(s.ctx, registryA, s.record()))
		got, err := s.storage.StoredIdentity(s.ctx, holder)
		s.Require().NoError(err)
		s.Equal(identity, got)
		s.Equal(string(audit.EventIdentityStored), s.emitter.Last().Action)
	})

	s.Run("duplicate holder rejected", func() {
		err := s.storage.AddIdentityToStorage(s.ctx, registryA, s.record())
		s.True(dErrors.Is(err, dErrors.CodeAlreadyRegistered))
	})

	s.Run("write through one registry is visible through another", func() {
		s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, registryB))
		s.Require().NoError(s.storage.ModifyStoredInvestorCountry(s.ctx, registryB, holder, domain.Country(276)))
		country, err := s.storage.StoredInvestorCountry(s.ctx, holder)
		s.Require().NoError(err)
		s.Equal(domain.Country(276), country)
	})

	s.Run("modify identity", func() {
		next := domain.DeriveAddress("identity-2")
		s.Require().NoError(s.storage.ModifyStoredIdentity(s.ctx, registryA, holder, next))
		got, err := s.storage.StoredIdentity(s.ctx, holder)
		s.Require().NoError(err)
		s.Equal(next, got)
		s.Equal(string(audit.EventIdentityUpdated), s.emitter.Last().Action)
	})

	s.Run("invalid country rejected", func() {
		err := s.storage.ModifyStoredInvestorCountry(s.ctx, registryA, holder, domain.Country(1000))
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("remove then read", func() {
		s.Require().NoError(s.storage.RemoveIdentityFromStorage(s.ctx, registryA, holder))
		_, err := s.storage.StoredIdentity(s.ctx, holder)
		s.True(dErrors.Is(err, dErrors.CodeNotRegistered))

		err = s.storage.RemoveIdentityFromStorage(s.ctx, registryA, holder)
		s.True(dErrors.Is(err, dErrors.CodeNotRegistered))
	})

	s.Run("modify unknown holder", func() {
		err := s.storage.ModifyStoredIdentity(s.ctx, registryA, domain.DeriveAddress("nobody"), identity)
		s.True(dErrors.Is(err, dErrors.CodeNotRegistered))
	})
}

func (s *StorageSuite) TestBatchIsAtomic() {
	first := storage.Record{Holder: domain.DeriveAddress("h1"), Identity: identity, Country: domain.Country(1)}
	second := storage.Record{Holder: domain.DeriveAddress("h2"), Identity: identity, Country: domain.Country(2)}
	s.Require().NoError(s.storage.AddIdentityToStorage(s.ctx, registryA, second))

	err := s.storage.AddIdentitiesToStorage(s.ctx, registryA, []storage.Record{first, second})
	s.True(dErrors.Is(err, dErrors.CodeAlreadyRegistered))

	_, err = s.storage.StoredIdentity(s.ctx, first.Holder)
	s.True(dErrors.Is(err, dErrors.CodeNotRegistered), "first record must not be written")

	n, err := s.storage.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *StorageSuite) TestConcurrentWritesFromTwoRegistries() {
	s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, registryB))

	const holders = 50
	var wg sync.WaitGroup
	for i := 0; i < holders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg := registryA
			if i%2 == 1 {
				reg = registryB
			}
			rec := storage.Record{
				Holder:   domain.DeriveAddress("holder-" + domain.Country(i+1).String()),
				Identity: identity,
				Country:  domain.Country(i + 1),
			}
			s.NoError(s.storage.AddIdentityToStorage(s.ctx, reg, rec))
		}(i)
	}
	wg.Wait()

	n, err := s.storage.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(holders, n)
}

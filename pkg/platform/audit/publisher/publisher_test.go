package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/platform/audit/store/memory"
	"assetgate/pkg/requestcontext"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublisher(t *testing.T, store audit.Store, opts ...Option) *Publisher {
	t.Helper()
	pub, err := NewPublisher(context.Background(), store, opts...)
	require.NoError(t, err)
	return pub
}

func TestPublisher_AssignsSequenceAndCategory(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := newPublisher(t, store, WithMetrics(NewMetricsWithRegistry(prometheus.NewRegistry())))

	holder := domain.DeriveAddress("holder")
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventTransfer), Subject: holder}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventAgentAdded)}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventComplianceModuleAdded)}))

	events, err := pub.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint64(1), events[0].Sequence)
	assert.Equal(t, uint64(3), events[2].Sequence)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.Equal(t, audit.CategorySecurity, events[1].Category)
	assert.Equal(t, audit.CategoryOperations, events[2].Category)
	assert.Equal(t, uint64(3), pub.LastSequence())
}

func TestPublisher_ContinuesStoredSequence(t *testing.T) {
	store := memory.NewInMemoryStore()
	require.NoError(t, store.Append(context.Background(), audit.Event{Sequence: 41, Action: "transfer"}))

	pub := newPublisher(t, store)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventPaused)}))

	events, err := pub.List(context.Background(), 41, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(42), events[0].Sequence)
}

func TestPublisher_RequestScopedFields(t *testing.T) {
	pub := newPublisher(t, memory.NewInMemoryStore())
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-1")

	require.NoError(t, pub.Emit(ctx, audit.Event{Action: string(audit.EventUnpaused)}))

	events, err := pub.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, "req-1", events[0].RequestID)
}

func TestPublisher_RejectsEventWithoutAction(t *testing.T) {
	pub := newPublisher(t, memory.NewInMemoryStore())
	assert.Error(t, pub.Emit(context.Background(), audit.Event{}))
	assert.Equal(t, uint64(0), pub.LastSequence())
}

type failingStore struct {
	*memory.InMemoryStore
}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func TestPublisher_PersistFailureDoesNotConsumeSequence(t *testing.T) {
	var notified int
	pub := newPublisher(t, failingStore{memory.NewInMemoryStore()}, WithSubscriber(func(context.Context, audit.Event) {
		notified++
	}))

	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventTransfer)})
	require.Error(t, err)
	assert.Equal(t, uint64(0), pub.LastSequence())
	assert.Zero(t, notified)
}

func TestPublisher_SubscribersInRegistrationOrder(t *testing.T) {
	pub := newPublisher(t, memory.NewInMemoryStore())
	var order []string
	pub.Subscribe(func(_ context.Context, e audit.Event) { order = append(order, "first:"+e.Action) })
	pub.Subscribe(func(_ context.Context, e audit.Event) { order = append(order, "second:"+e.Action) })

	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "transfer"}))
	assert.Equal(t, []string{"first:transfer", "second:transfer"}, order)
}

func TestPublisher_ConcurrentEmitsAreGapFree(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := newPublisher(t, store)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), audit.Event{Action: string(audit.EventTransfer)})
		}()
	}
	wg.Wait()

	events, err := store.ListSince(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 50)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Sequence)
	}
}

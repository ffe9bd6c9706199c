package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemoryStore() (*MemorySessionStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	store := NewMemorySessionStore()
	store.now = clock.Now
	return store, clock
}

func TestMemorySessionStore_SaveAndLoad(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "abc")
	assert.True(t, errors.IsNotFoundError(err))

	state := []byte(`{"kind":"idle"}`)
	require.NoError(t, store.Save(ctx, "abc", state, time.Minute))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	// callers cannot mutate stored state through either slice
	state[0] = 'X'
	loaded[1] = 'Y'
	again, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"kind":"idle"}`), again)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store, clock := newTestMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", []byte("v"), time.Minute))

	clock.Advance(59 * time.Second)
	_, err := store.Load(ctx, "abc")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = store.Load(ctx, "abc")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemorySessionStore_SweepsExpiredOnSave(t *testing.T) {
	store, clock := newTestMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("old-%d", i), []byte("v"), time.Second))
	}
	assert.Equal(t, 5, store.Len())

	clock.Advance(2 * sweepInterval)
	require.NoError(t, store.Save(ctx, "fresh", []byte("v"), time.Hour))
	assert.Equal(t, 1, store.Len())
}

func TestMemorySessionStore_ValidationErrors(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(store.Save(ctx, "", []byte("v"), time.Minute)))
	assert.True(t, errors.IsValidationError(store.Save(ctx, "id", nil, time.Minute)))
	assert.True(t, errors.IsValidationError(store.Save(ctx, "id", []byte("v"), 0)))
}

func TestMemorySessionStore_ContextCancellation(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, "abc", []byte("v"), time.Minute), context.Canceled)
	assert.ErrorIs(t, store.Ping(ctx), context.Canceled)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestMemorySessionStore_Concurrent(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i%4)
			for j := 0; j < 50; j++ {
				_ = store.Save(ctx, id, []byte(fmt.Sprintf("%d", j)), time.Minute)
				_, _ = store.Load(ctx, id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, store.Len())
	assert.Equal(t, "memory", store.Name())
	var _ ports.SessionStore = store
}

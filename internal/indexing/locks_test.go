package indexing

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := newKeyedMutex()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock, err := k.Lock(context.Background(), "key")
			if err != nil {
				t.Errorf("Lock() error = %v", err)
				return
			}
			defer unlock()

			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}

			inside.Add(-1)
		}()
	}

	wg.Wait()

	require.EqualValues(t, 1, maxSeen.Load())
	require.Zero(t, k.size())
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	k := newKeyedMutex()
	ctx := context.Background()

	unlockA, err := k.Lock(ctx, "a")
	require.NoError(t, err)

	unlockB, err := k.Lock(ctx, "b")
	require.NoError(t, err)

	require.Equal(t, 2, k.size())

	unlockA()
	unlockB()

	require.Zero(t, k.size())
}

func TestKeyedMutex_WaiterGivesUpOnContext(t *testing.T) {
	k := newKeyedMutex()

	unlock, err := k.Lock(context.Background(), "key")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = k.Lock(ctx, "key")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, k.size(), "abandoned waiter must drop its reference")

	unlock()
	require.Zero(t, k.size())

	unlock, err = k.Lock(context.Background(), "key")
	require.NoError(t, err)
	unlock()
}

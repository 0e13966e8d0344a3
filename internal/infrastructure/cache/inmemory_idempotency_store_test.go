package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	t.Run("first mark wins, second is rejected", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		ctx := context.Background()
		first, err := store.MarkProcessed(ctx, "checkout:confirm:cs_test_abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, first)

		second, err := store.MarkProcessed(ctx, "checkout:confirm:cs_test_abc", time.Minute)
		require.NoError(t, err)
		assert.False(t, second)
	})

	t.Run("expired key can be marked again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		ctx := context.Background()
		_, err := store.MarkProcessed(ctx, "key", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		again, err := store.MarkProcessed(ctx, "key", time.Minute)
		require.NoError(t, err)
		assert.True(t, again)
	})

	t.Run("exactly one concurrent caller wins", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		ctx := context.Background()
		const callers = 20
		var wins int64
		var mu sync.Mutex
		var wg sync.WaitGroup

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				won, err := store.MarkProcessed(ctx, "contested", time.Minute)
				assert.NoError(t, err)
				if won {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), wins)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "known", time.Minute)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "known")
	require.NoError(t, err)
	assert.True(t, processed)
}

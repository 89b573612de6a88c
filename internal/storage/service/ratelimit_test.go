package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitedStore(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates all operations", func(t *testing.T) {
		store := NewRateLimitedStore(NewMemoryStore(), 1000, 10)

		_, err := store.Set(ctx, "k", testEntry("id1"))
		require.NoError(t, err)

		entry, err := store.Get(ctx, "k")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "id1", entry.KeyID)

		keys, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"k"}, keys)

		_, err = store.Delete(ctx, "k")
		require.NoError(t, err)

		entry, err = store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		// Burst of 1 at a very low rate: the second call has to wait and
		// should fail once the context is cancelled.
		store := NewRateLimitedStore(NewMemoryStore(), 0.001, 1)

		_, err := store.Get(ctx, "k")
		require.NoError(t, err)

		cancelled, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err = store.Get(cancelled, "k")
		assert.Error(t, err)
	})
}

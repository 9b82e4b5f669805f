package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunEntryStoreContract runs a suite of tests to verify that an EntryStore
// implementation adheres to the defined interface contract.
func RunEntryStoreContract(t *testing.T, store EntryStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Missing key is empty", func(t *testing.T) {
		entries, err := store.Entries(ctx, key+"-missing")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Append keeps order", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, key, "alpha", "beta"))
		require.NoError(t, store.Append(ctx, key, "gamma"))

		entries, err := store.Entries(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, entries)
	})

	t.Run("Keys are independent", func(t *testing.T) {
		other := key + "-other"
		require.NoError(t, store.Append(ctx, other, "x"))
		defer func() { _ = store.Clear(ctx, other) }()

		entries, err := store.Entries(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, entries)
	})

	t.Run("Many entries", func(t *testing.T) {
		many := key + "-many"
		want := make([]string, 45)
		for i := range want {
			want[i] = fmt.Sprintf("entry %02d", i+1)
		}
		require.NoError(t, store.Append(ctx, many, want...))
		defer func() { _ = store.Clear(ctx, many) }()

		entries, err := store.Entries(ctx, many)
		require.NoError(t, err)
		assert.Equal(t, want, entries)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, key))

		entries, err := store.Entries(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, entries)

		require.NoError(t, store.Clear(ctx, key), "clearing twice is not an error")
	})
}

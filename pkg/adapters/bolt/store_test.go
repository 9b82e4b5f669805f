package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/bolt"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, path string) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(path)
	require.NoError(t, err)
	return store
}

func TestBoltStore_Contract(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "lists.db"))
	defer store.Close()

	ports.RunEntryStoreContract(t, store)
}

func TestBoltStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.db")
	ctx := context.Background()

	store := open(t, path)
	require.NoError(t, store.Append(ctx, "k", "one", "two"))
	require.NoError(t, store.Close())

	store = open(t, path)
	defer store.Close()
	require.NoError(t, store.Append(ctx, "k", "three"))

	entries, err := store.Entries(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, entries)
}

func TestBoltStore_OrderPastByteBoundary(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "lists.db"))
	defer store.Close()
	ctx := context.Background()

	want := make([]string, 300)
	for i := range want {
		want[i] = string(rune('a' + i%26))
	}
	require.NoError(t, store.Append(ctx, "k", want...))

	entries, err := store.Entries(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, want, entries)
}

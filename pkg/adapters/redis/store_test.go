package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client)
	ports.RunEntryStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "fruits", "apple", "pear"))
	assert.True(t, mr.Exists("test:fruits"))

	got, err := mr.List("test:fruits")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear"}, got)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "k", "a"))
	entries, err := store.Entries(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, entries)

	mr.FastForward(2 * time.Second)

	entries, err = store.Entries(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Entries(context.Background(), "k")
	assert.Error(t, err)
}

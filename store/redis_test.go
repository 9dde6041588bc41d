package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) *Redis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedis(client)
}

func TestRedisStore(t *testing.T) {
	runStoreContract(t, setupTestRedis(t))
}

func TestRedisSetMultiAppliesAllWrites(t *testing.T) {
	ctx := context.Background()
	s := setupTestRedis(t)

	writes := []Write{
		{Key: "users", Value: []byte(`[{"id":"u1","orders":[{"id":"o1"}]}]`)},
		{Key: "cart:u1", Value: []byte(`[]`)},
		{Key: "stock", Value: []byte(`{"7":1}`)},
	}
	require.NoError(t, s.SetMulti(ctx, writes))

	for _, w := range writes {
		value, err := s.Get(ctx, w.Key)
		require.NoError(t, err)
		assert.Equal(t, string(w.Value), string(value))
	}
}

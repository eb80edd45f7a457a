package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/optirail/pkg/adapters/redis"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	ports.RunWorkspaceStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("test:ws:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Workspace{Name: "bench"}))
	assert.True(t, mr.Exists("test:ws:bench"))
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	ws := &domain.Workspace{
		Name: "expiring",
		Components: domain.Rail{
			{ID: "d1", Type: "free_space", Params: map[string]float64{"length": 10}},
		},
	}
	require.NoError(t, store.Save(ctx, ws))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "expiring")

	// Key expiration is driven by miniredis time
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "expiring")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestRedisStore_List_LexicalOrder(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	// Same index, different expiries: zeta expires first.
	long := redis.NewFromClient(client, redis.WithTTL(time.Hour))
	short := redis.NewFromClient(client, redis.WithTTL(10*time.Minute))
	require.NoError(t, long.Save(ctx, &domain.Workspace{Name: "alpha"}))
	require.NoError(t, short.Save(ctx, &domain.Workspace{Name: "zeta"}))
	require.NoError(t, long.Save(ctx, &domain.Workspace{Name: "mid"}))

	names, err := long.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

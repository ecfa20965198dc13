package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/stepwise/pkg/adapters/redis"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunRunStoreContract(t, redis.NewFromClient(client))
}

func TestRedisSettings_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunSettingsStoreContract(t, redis.NewFromClient(client).Settings())
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	run := &domain.Run{ID: "run-ttl", Algorithm: domain.AlgorithmLCS, CreatedAt: time.Now()}

	require.NoError(t, store.Save(ctx, run))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, run.ID)

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, run.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Run{ID: "my-run", CreatedAt: time.Now()}))
	require.NoError(t, store.Settings().Set(ctx, ports.SettingAPIKey, "sk-test"))

	assert.True(t, mr.Exists("custom:app:run:my-run"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:runs"), "Expected index with custom prefix to exist")
	assert.Equal(t, "sk-test", mr.HGet("custom:app:settings", ports.SettingAPIKey))
}

func TestRedisStore_ListOrdersByCreation(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, &domain.Run{ID: "late", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Run{ID: "early", CreatedAt: base}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, ids)
}

func TestRedisStore_ListOrdersWithinOneSecond(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{"c", "a", "d", "b"}
	for i, id := range ids {
		require.NoError(t, store.Save(ctx, &domain.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Millisecond)}))
	}

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

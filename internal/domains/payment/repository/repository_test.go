package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify-backend/internal/domains/payment/gateway"
	infraCache "sportify-backend/internal/infrastructure/cache"
)

func setupTestRedis(t *testing.T) (*infraCache.RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return infraCache.NewRedisCacheFromClient(client), mr
}

func TestIdempotencyRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)
	repo := NewIdempotencyRepository(store, time.Hour, time.Minute)

	acquired, existing, err := repo.Acquire(ctx, "key-1", "fp-1")
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.Nil(t, existing)
	assert.Equal(t, time.Minute, mr.TTL(idempotencyKeyPrefix+"key-1"))

	acquired, existing, err = repo.Acquire(ctx, "key-1", "fp-1")
	require.NoError(t, err)
	assert.False(t, acquired)
	require.NotNil(t, existing)
	assert.Equal(t, IdempotencyStatusProcessing, existing.Status)

	order := &gateway.Order{ID: "order_1", Amount: 50000, Currency: "INR"}
	require.NoError(t, repo.Complete(ctx, "key-1", "fp-1", order))
	assert.Equal(t, time.Hour, mr.TTL(idempotencyKeyPrefix+"key-1"))

	acquired, existing, err = repo.Acquire(ctx, "key-1", "fp-1")
	require.NoError(t, err)
	assert.False(t, acquired)
	require.NotNil(t, existing)
	assert.Equal(t, IdempotencyStatusCompleted, existing.Status)
	assert.Equal(t, "fp-1", existing.Fingerprint)
	require.NotNil(t, existing.Order)
	assert.Equal(t, "order_1", existing.Order.ID)
}

func TestIdempotencyRepository_Release(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestRedis(t)
	repo := NewIdempotencyRepository(store, time.Hour, time.Minute)

	acquired, _, err := repo.Acquire(ctx, "key-2", "fp")
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, repo.Release(ctx, "key-2"))

	acquired, _, err = repo.Acquire(ctx, "key-2", "fp")
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestIdempotencyRepository_LockExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)
	repo := NewIdempotencyRepository(store, time.Hour, 30*time.Second)

	acquired, _, err := repo.Acquire(ctx, "key-3", "fp")
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(31 * time.Second)

	acquired, existing, err := repo.Acquire(ctx, "key-3", "fp")
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.Nil(t, existing)
}

func TestIdempotencyRepository_StoreDown(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)
	repo := NewIdempotencyRepository(store, time.Hour, time.Minute)
	mr.Close()

	_, _, err := repo.Acquire(ctx, "key-4", "fp")
	assert.Error(t, err)
}

func TestIssuedOrderRepository(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)
	repo := NewIssuedOrderRepository(store, time.Hour)

	ok, err := repo.Exists(ctx, "order_1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Record(ctx, &gateway.Order{ID: "order_1", Amount: 100, Currency: "INR"}))

	ok, err = repo.Exists(ctx, "order_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, mr.TTL(issuedOrderKeyPrefix+"order_1"))

	mr.FastForward(time.Hour + time.Second)

	ok, err = repo.Exists(ctx, "order_1")
	require.NoError(t, err)
	assert.False(t, ok)
}

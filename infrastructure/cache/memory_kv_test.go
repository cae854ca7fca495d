package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tubelens/domain/repository"
	"tubelens/infrastructure/cache"
)

func TestNewRedisKV(t *testing.T) {
	// The Redis-backed store needs a live server; here we only ensure the
	// constructor satisfies the interface.
	kv := cache.NewRedisKV(nil)
	assert.NotNil(t, kv)
}

func TestMemoryKV_SetGetRemove(t *testing.T) {
	kv := cache.NewMemoryKV()
	ctx := context.Background()

	assert.NoError(t, kv.Set(ctx, "coupon:AAAA", `{"code":"AAAA"}`))

	val, err := kv.Get(ctx, "coupon:AAAA")
	assert.NoError(t, err)
	assert.Equal(t, `{"code":"AAAA"}`, val)

	assert.NoError(t, kv.Remove(ctx, "coupon:AAAA"))

	_, err = kv.Get(ctx, "coupon:AAAA")
	var notFound *repository.ErrKeyNotFound
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "coupon:AAAA", notFound.Key)
}

func TestMemoryKV_KeysFiltersByPrefix(t *testing.T) {
	kv := cache.NewMemoryKV()
	ctx := context.Background()

	assert.NoError(t, kv.Set(ctx, "coupon:AAAA", "a"))
	assert.NoError(t, kv.Set(ctx, "coupon:BBBB", "b"))
	assert.NoError(t, kv.Set(ctx, "plan:pro-1m", "p"))

	keys, err := kv.Keys(ctx, "coupon:")
	assert.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.ElementsMatch(t, []string{"coupon:AAAA", "coupon:BBBB"}, keys)

	keys, err = kv.Keys(ctx, "plan:")
	assert.NoError(t, err)
	assert.Equal(t, []string{"plan:pro-1m"}, keys)
}

func TestMemoryKV_RemoveMissingKeyIsNoop(t *testing.T) {
	kv := cache.NewMemoryKV()
	assert.NoError(t, kv.Remove(context.Background(), "never-set"))
}

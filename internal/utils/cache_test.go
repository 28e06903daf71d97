package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func cacheTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCacheData_RoundTrip(t *testing.T) {
	_, rdb := cacheTestClient(t)
	ctx := context.Background()

	in := &cachedThing{Name: "jwks", Count: 2}
	require.NoError(t, SetCacheData(ctx, rdb, "test:key", in, time.Minute))

	out, appErr := GetCacheData[cachedThing](ctx, rdb, "test:key")
	require.Nil(t, appErr)
	require.NotNil(t, out)
	assert.Equal(t, *in, *out)
}

func TestGetCacheData_MissIsNilNil(t *testing.T) {
	_, rdb := cacheTestClient(t)

	out, appErr := GetCacheData[cachedThing](context.Background(), rdb, "test:absent")
	assert.Nil(t, appErr, "a miss is not an error")
	assert.Nil(t, out)
}

func TestGetCacheData_Expiry(t *testing.T) {
	mr, rdb := cacheTestClient(t)
	ctx := context.Background()

	require.NoError(t, SetCacheData(ctx, rdb, "test:key", &cachedThing{Name: "short"}, time.Second))
	mr.FastForward(2 * time.Second)

	out, appErr := GetCacheData[cachedThing](ctx, rdb, "test:key")
	assert.Nil(t, appErr)
	assert.Nil(t, out, "expired entries read as a miss")
}

func TestDeleteCacheData(t *testing.T) {
	_, rdb := cacheTestClient(t)
	ctx := context.Background()

	require.NoError(t, SetCacheData(ctx, rdb, "test:key", &cachedThing{Name: "gone"}, time.Minute))
	require.NoError(t, DeleteCacheData(ctx, rdb, "test:key"))

	out, appErr := GetCacheData[cachedThing](ctx, rdb, "test:key")
	assert.Nil(t, appErr)
	assert.Nil(t, out)
}

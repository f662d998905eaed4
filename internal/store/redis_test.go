package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	b, err := OpenRedis(context.Background(), &redis.Options{Addr: mr.Addr()}, "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func TestRedis_SetGetUsesPrefix(t *testing.T) {
	b, mr := newRedisBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, KeySeniors, []byte(`[]`)))

	got, err := mr.Get("test:" + KeySeniors)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	v, err := b.Get(ctx, KeySeniors)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestRedis_Get_Absent_ReturnsNilNil(t *testing.T) {
	b, _ := newRedisBackend(t)

	v, err := b.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedis_SetManyAndDelete(t *testing.T) {
	b, mr := newRedisBackend(t)
	ctx := context.Background()

	require.NoError(t, b.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	assert.True(t, mr.Exists("test:a"))
	assert.True(t, mr.Exists("test:b"))

	require.NoError(t, b.Delete(ctx, "a"))
	assert.False(t, mr.Exists("test:a"))
}

func TestRedis_ErrorsWrapKey(t *testing.T) {
	b, mr := newRedisBackend(t)
	mr.Close()

	_, err := b.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get k")
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), &redis.Options{Addr: addr, MaxRetries: -1}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}

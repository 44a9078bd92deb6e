package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedis runs a throwaway Redis container and returns its address.
func startRedis(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping Redis container test in short mode")
	}
	if os.Getenv("CI") == "" && !isDockerAvailable() {
		t.Skip("Docker not available")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func isDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return false
	}
	defer provider.Close()

	_, err = provider.Client().Ping(ctx)
	return err == nil
}

func TestRedisClient_GetSetDelete(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()

	c, err := NewRedisClient(ctx, RedisConfig{Addr: addr, Prefix: "test:"})
	require.NoError(t, err)
	defer c.Close()

	raw := redis.NewClient(&redis.Options{Addr: addr})
	defer raw.Close()

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// Keys are stored under the prefix.
	n, err := raw.Exists(ctx, "test:k").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = raw.Exists(ctx, "k").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	ttl, err := raw.TTL(ctx, "test:k").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisClient_Expiry(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()

	c, err := NewRedisClient(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, HashKey("summarize", "model", "text"), []byte(`"short"`), time.Second))

	assert.Eventually(t, func() bool {
		_, err := c.Get(ctx, HashKey("summarize", "model", "text"))
		return err == ErrCacheMiss
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisClient_DefaultPrefix(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()

	c, err := NewRedisClient(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	raw := redis.NewClient(&redis.Options{Addr: addr})
	defer raw.Close()

	got, err := raw.Get(ctx, "legal:k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

//go:build integration

package ratelimit

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRedis *redis.Client

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct pool: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start redis: %s", err)
	}
	_ = resource.Expire(120)

	testRedis = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))})
	if err := pool.Retry(func() error {
		return testRedis.Ping(context.Background()).Err()
	}); err != nil {
		log.Fatalf("could not connect to redis: %s", err)
	}

	code := m.Run()

	_ = testRedis.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("could not purge redis: %s", err)
	}
	os.Exit(code)
}

func TestRedisLimiter_WindowAlwaysExpires(t *testing.T) {
	ctx := context.Background()
	key := fmt.Sprintf("login|%d", time.Now().UnixNano())
	l := NewRedisLimiter(testRedis, 2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := testRedis.TTL(ctx, "ratelimit:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisLimiter_NewWindowAfterExpiry(t *testing.T) {
	ctx := context.Background()
	key := fmt.Sprintf("otp|%d", time.Now().UnixNano())
	l := NewRedisLimiter(testRedis, 1, time.Second)

	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, key)
	assert.False(t, ok)

	require.Eventually(t, func() bool {
		ok, err := l.Allow(ctx, key)
		return err == nil && ok
	}, 5*time.Second, 200*time.Millisecond)
}

package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

// redisImage matches the server version the dedup store and focus events
// run against.
const redisImage = "redis:8-alpine"

// SetupRedisContainer starts a throwaway Redis and returns a connected
// client. The test is skipped when Docker is unavailable.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	// testcontainers panics instead of erroring when no Docker host is found.
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("docker unavailable, skipping redis-backed test: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, redisImage)
	if err != nil {
		t.Skipf("docker unavailable, skipping redis-backed test: %v", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		terminate()
		t.Skipf("redis container has no endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		terminate()
		t.Skipf("redis container not reachable at %s: %v", endpoint, err)
	}

	return client, func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
		terminate()
	}
}

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/inflight/config"
	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return config.RedisConfig{Addr: host + ":" + port.Port()}
}

func TestRedisCache_KnownCodes(t *testing.T) {
	c := NewRedisCache(startRedis(t), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	codes, err := c.GetKnownCodes(ctx)
	require.NoError(t, err)
	assert.Nil(t, codes)

	now := time.Now().UTC().Truncate(time.Second)
	want := []domain.KnownCode{
		{ID: 1, BeverageName: "Beer", QRURL: "Q1", CreatedAt: now, UpdatedAt: now},
		{ID: 2, BeverageName: "Wine", QRURL: "Q2", CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, c.SetKnownCodes(ctx, want))

	got, err := c.GetKnownCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ttl, err := c.client.TTL(ctx, knownCodesKey()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisCache_EmptyListIsAHit(t *testing.T) {
	c := NewRedisCache(startRedis(t), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.SetKnownCodes(ctx, []domain.KnownCode{}))

	got, err := c.GetKnownCodes(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

//go:build integration

package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/config"
	redisinfra "github.com/fastygo/focus/internal/infrastructure/redis"
)

var testRedisURL string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	client, err := redisinfra.NewClient(ctx, config.RedisConfig{URL: testRedisURL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, redisinfra.Pinger(client)(ctx))

	repo := NewSessionRepository(client, time.Minute)
	session := &domain.Session{ID: "sid-1", UserID: "user-1"}
	require.NoError(t, repo.Save(ctx, session))
	assert.False(t, session.ExpiresAt.IsZero())

	ttl, err := client.TTL(ctx, key(session.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	got, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	require.NoError(t, repo.Delete(ctx, "sid-1"))
	_, err = repo.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_RejectsEmptyID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client, err := redisinfra.NewClient(context.Background(), config.RedisConfig{URL: testRedisURL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewSessionRepository(client, time.Minute)
	assert.ErrorIs(t, repo.Save(context.Background(), &domain.Session{}), domain.ErrInvalidPayload)
}

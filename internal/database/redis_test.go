package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/dietwise/backend/config"
	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptions(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		opts, err := database.RedisOptions(&config.Config{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
	})

	t.Run("URL wins over host and port", func(t *testing.T) {
		opts, err := database.RedisOptions(&config.Config{
			RedisHost: "ignored",
			RedisPort: "1",
			RedisURL:  "redis://:pw@redis.internal:6379/3",
		})
		require.NoError(t, err)
		assert.Equal(t, "redis.internal:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Equal(t, 3, opts.DB)
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := database.RedisOptions(&config.Config{RedisURL: "http://nope"})
		assert.Error(t, err)
	})
}

func TestNewRedisClientUnreachable(t *testing.T) {
	start := time.Now()
	client, err := database.NewRedisClient(context.Background(), &config.Config{
		RedisHost:        "127.0.0.1",
		RedisPort:        "1",
		RedisPingTimeout: 500 * time.Millisecond,
	})
	assert.Nil(t, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis at 127.0.0.1:1")
	assert.Less(t, time.Since(start), 5*time.Second)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const memoryKeyPrefix = "conversation:memory"

// RedisConversationMemory stores each user's turns in a Redis list trimmed
// to the last maxTurns entries. Idle histories expire after ttl.
type RedisConversationMemory struct {
	redis    *redis.Client
	maxTurns int
	ttl      time.Duration
}

var _ ConversationMemory = (*RedisConversationMemory)(nil)

func NewRedisConversationMemory(client *redis.Client, maxTurns int, ttl time.Duration) *RedisConversationMemory {
	return &RedisConversationMemory{
		redis:    client,
		maxTurns: maxTurns,
		ttl:      ttl,
	}
}

func (m *RedisConversationMemory) key(userID string) string {
	return fmt.Sprintf("%s:%s", memoryKeyPrefix, userID)
}

func (m *RedisConversationMemory) Get(ctx context.Context, userID string) ([]models.ConversationTurn, error) {
	raw, err := m.redis.LRange(ctx, m.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation memory: %w", err)
	}

	turns := make([]models.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var turn models.ConversationTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("failed to decode conversation turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return withSentinel(turns), nil
}

func (m *RedisConversationMemory) Append(ctx context.Context, userID string, turn models.ConversationTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation turn: %w", err)
	}

	key := m.key(userID)
	_, err = m.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		if m.maxTurns > 0 {
			pipe.LTrim(ctx, key, int64(-m.maxTurns), -1)
		}
		if m.ttl > 0 {
			pipe.Expire(ctx, key, m.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save conversation turn: %w", err)
	}
	return nil
}

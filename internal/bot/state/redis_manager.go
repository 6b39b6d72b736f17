package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// stateTTL clears conversations abandoned mid-input
const stateTTL = 24 * time.Hour

// RedisManager manages user states using Redis so they survive restarts
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(userID int64) string { return fmt.Sprintf("fitness:user:%d:state", userID) }
func tempKey(userID int64) string  { return fmt.Sprintf("fitness:user:%d:temp", userID) }

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	if err := m.client.Set(context.Background(), stateKey(userID), state, stateTTL).Err(); err != nil {
		logger.Warn("Failed to save user state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	val, err := m.client.Get(context.Background(), stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None
	}
	if err != nil {
		logger.Warn("Failed to load user state", "user_id", userID, "error", err)
		return None
	}
	return val
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	m.client.Del(context.Background(), stateKey(userID))
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, key string, value string) {
	ctx := context.Background()
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, tempKey(userID), key, value)
	pipe.Expire(ctx, tempKey(userID), stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Failed to save temp data", "user_id", userID, "key", key, "error", err)
	}
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	val, err := m.client.HGet(context.Background(), tempKey(userID), key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	m.client.Del(context.Background(), tempKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

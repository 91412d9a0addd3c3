package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// sessionKeyPrefix namespaces session keys in Redis
const sessionKeyPrefix = "tastemap:session"

// RedisStore keeps sessions in Redis so they survive process restarts and
// are shared between instances.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds connection settings for the Redis session store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection with a ping
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, sid)
}

// Set binds sid to userID for the given TTL
func (s *RedisStore) Set(ctx context.Context, sid string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(sid), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get resolves sid to a user ID
func (s *RedisStore) Get(ctx context.Context, sid string) (int64, error) {
	value, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", value, err)
	}
	return userID, nil
}

// Touch extends the TTL of an existing session
func (s *RedisStore) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, sessionKey(sid), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to extend session: %w", err)
	}
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"weatherlookup.app/internal/config"
	"weatherlookup.app/pkg/errors"
)

const (
	keyPrefix      = "weather:session:"
	connectTimeout = 5 * time.Second
)

// RedisSessionStore implements the SessionStore port using Redis
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore connects to Redis and verifies the connection
func NewRedisSessionStore(config *config.RedisConfig) (*RedisSessionStore, error) {
	if config == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  time.Duration(config.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewSessionError("failed to connect to Redis", err)
	}

	return &RedisSessionStore{client: client}, nil
}

// Load returns the stored state or a NotFound error
func (r *RedisSessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if sessionID == "" {
		return nil, errors.NewValidationError("session id cannot be empty")
	}

	val, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, errors.NewSessionError("redis get operation failed", err)
	}
	return val, nil
}

// Save overwrites the session state and refreshes its expiry
func (r *RedisSessionStore) Save(ctx context.Context, sessionID string, state []byte, ttl time.Duration) error {
	if sessionID == "" {
		return errors.NewValidationError("session id cannot be empty")
	}
	if state == nil {
		return errors.NewValidationError("session state cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("session TTL must be positive")
	}

	if err := r.client.Set(ctx, keyPrefix+sessionID, state, ttl).Err(); err != nil {
		return errors.NewSessionError("redis set operation failed", err)
	}
	return nil
}

// Ping checks if Redis connection is alive
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewSessionError("Redis ping failed", err)
	}
	return nil
}

func (r *RedisSessionStore) Name() string {
	return "redis"
}

// Close closes the Redis client connection
func (r *RedisSessionStore) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewSessionError("failed to close Redis connection", err)
	}
	return nil
}

package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const configPrefix = "deviceconfig:"

// RedisStore implements the Store interface using Redis. Records have no
// TTL: configurations live until deleted, and authorization expiry is
// checked lazily at exchange time.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put stores a device configuration, replacing any previous record under the
// same key ID.
func (s *RedisStore) Put(ctx context.Context, cfg *DeviceConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}
	if err := s.client.Set(ctx, configPrefix+cfg.KeyID, data, 0).Err(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	return nil
}

// Get retrieves a device configuration by key ID, or (nil, nil) when absent.
func (s *RedisStore) Get(ctx context.Context, keyID string) (*DeviceConfig, error) {
	data, err := s.client.Get(ctx, configPrefix+keyID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting configuration: %w", err)
	}

	var cfg DeviceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	return &cfg, nil
}

// Delete removes a device configuration. It reports ErrNotFound when the key
// ID is not stored.
func (s *RedisStore) Delete(ctx context.Context, keyID string) error {
	deleted, err := s.client.Del(ctx, configPrefix+keyID).Result()
	if err != nil {
		return fmt.Errorf("deleting configuration: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every stored configuration.
func (s *RedisStore) List(ctx context.Context) ([]*DeviceConfig, error) {
	var out []*DeviceConfig

	iter := s.client.Scan(ctx, 0, configPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("getting configuration: %w", err)
		}
		var cfg DeviceConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling configuration: %w", err)
		}
		out = append(out, &cfg)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning configurations: %w", err)
	}
	return out, nil
}

// CheckHealth verifies Redis connectivity.
func (s *RedisStore) CheckHealth(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

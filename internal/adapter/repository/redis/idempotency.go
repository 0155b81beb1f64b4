package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gaapledger/internal/usecase"
)

const (
	defaultPrefix      = "gaapledger:idempotency:"
	inFlight           = "processing"
	maxReserveAttempts = 3
)

// ErrReserveContended is returned when a key vanished between SETNX and
// GET on every attempt.
var ErrReserveContended = errors.New("idempotency key is contended")

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
// A key holds the in-flight marker until the response is completed.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: defaultPrefix,
	}
}

// Reserve claims key with SETNX. When the key is taken it returns the
// stored response, or usecase.ErrRequestInFlight if there is none yet.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (*usecase.IdempotentResponse, error) {
	fullKey := s.prefix + key

	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		claimed, err := s.client.SetNX(ctx, fullKey, inFlight, ttl).Result()
		if err != nil {
			return nil, err
		}
		if claimed {
			return nil, nil
		}

		raw, err := s.client.Get(ctx, fullKey).Bytes()
		if errors.Is(err, redis.Nil) {
			// Expired or released between SETNX and GET.
			continue
		}
		if err != nil {
			return nil, err
		}
		if string(raw) == inFlight {
			return nil, usecase.ErrRequestInFlight
		}

		var resp usecase.IdempotentResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decode stored response for %q: %w", key, err)
		}
		return &resp, nil
	}

	return nil, fmt.Errorf("%w: key %q kept changing", ErrReserveContended, key)
}

// Complete replaces the in-flight marker with the final response.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, response usecase.IdempotentResponse, ttl time.Duration) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, raw, ttl).Err()
}

// Release deletes key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

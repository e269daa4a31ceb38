package inputvalidator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCorruptInput is returned when a stored snapshot cannot be decoded.
var ErrCorruptInput = errors.New("inputvalidator: stored input is corrupt")

// RedisInputStore shares validated input between instances. Snapshots are
// JSON objects under "<prefix><name>"; a zero ttl keeps them forever.
type RedisInputStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisInputStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisInputStore {
	if prefix == "" {
		prefix = "validator:input:"
	}
	return &RedisInputStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisInputStore) Put(ctx context.Context, name string, input map[string]string) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("inputvalidator: marshal input: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+name, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("inputvalidator: redis set: %w", err)
	}
	return nil
}

func (r *RedisInputStore) Get(ctx context.Context, name string) (map[string]string, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("inputvalidator: redis get: %w", err)
	}

	var input map[string]string
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, false, errors.Join(ErrCorruptInput, err)
	}
	return input, true, nil
}

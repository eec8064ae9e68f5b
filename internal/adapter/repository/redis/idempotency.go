package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyNamespace prefixes every idempotency key.
const DefaultIdempotencyNamespace = "pocketbank:idempotency:"

const defaultIdempotencyTTL = 24 * time.Hour

// processingMarker is stored while the first request with a key is in flight.
const processingMarker = "processing"

// claimScript stores ARGV[1] under a free key and returns nothing, or returns
// what an earlier request already stored.
var claimScript = redis.NewScript(`
local existing = redis.call('GET', KEYS[1])
if existing then
	return existing
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return false
`)

// releaseScript drops a key only while it still holds the in-flight marker,
// so a completed response is never discarded.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// IdempotencyStore remembers responses to requests carrying an
// Idempotency-Key.
type IdempotencyStore struct {
	client    redis.Cmdable
	namespace string
}

func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client, namespace: DefaultIdempotencyNamespace}
}

func (s *IdempotencyStore) key(k string) string {
	return s.namespace + k
}

// CheckAndSet claims key for the caller. When the key is already taken it
// reports true with the stored value, which is either a finished response
// or the in-flight marker. A nil response claims the key with the marker.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	value := response
	if value == nil {
		value = []byte(processingMarker)
	}
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	existing, err := claimScript.Run(ctx, s.client, []string{s.key(key)}, value, ttl.Milliseconds()).Text()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil, nil
	case err != nil:
		return false, nil, fmt.Errorf("claim idempotency key: %w", err)
	}

	return true, []byte(existing), nil
}

// Update replaces the in-flight marker with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), response, ttl).Err(); err != nil {
		return fmt.Errorf("store idempotent response: %w", err)
	}
	return nil
}

// Release frees a key whose request failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.key(key)}, processingMarker).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

// IsProcessing reports whether a stored value is the in-flight marker.
func IsProcessing(value []byte) bool {
	return string(value) == processingMarker
}

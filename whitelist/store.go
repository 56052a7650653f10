package whitelist

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the task engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

const minEntryTTL = time.Second

// Store is a Redis-backed whitelist of live renewal tokens. Entries carry a
// TTL equal to the token lifetime so revocation state can never outlive the
// token it guards.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a whitelist [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redis redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  redis,
		prefix: prefix,
	}
}

func (s *Store) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + ":wl:" + base64.RawURLEncoding.EncodeToString(sum[:])
}

// Add whitelists token for ownerID with the given TTL. Re-adding an existing
// token overwrites its entry and resets the TTL.
//
//	Performance: 1 Redis SET.
func (s *Store) Add(ctx context.Context, token, ownerID string, ttl time.Duration) error {
	if token == "" {
		return errors.New("empty token")
	}
	if ttl < minEntryTTL {
		ttl = minEntryTTL
	}

	if err := s.redis.Set(ctx, s.key(token), ownerID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Contains reports whether token is currently whitelisted. An expired or
// removed entry is (false, nil); an error means Redis could not answer and
// the caller must not treat the token as revoked.
//
//	Performance: 1 Redis GET.
func (s *Store) Contains(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	if err := s.redis.Get(ctx, s.key(token)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return true, nil
}

// Remove deletes the whitelist entry for token. Removing an absent entry is
// not an error, which keeps logout idempotent.
//
//	Performance: 1 Redis DEL.
func (s *Store) Remove(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.redis.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Owner returns the owner id recorded for a whitelisted token. A missing
// entry is reported via redis.Nil.
//
//	Performance: 1 Redis GET.
func (s *Store) Owner(ctx context.Context, token string) (string, error) {
	owner, err := s.redis.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return owner, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

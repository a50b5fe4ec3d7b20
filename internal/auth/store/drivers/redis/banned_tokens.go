package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lodgepole/gatehouse/internal/auth/store"
)

// Key prefix to keep revocation entries out of the way of other tenants of
// the same redis.
const bannedTokenKeyPrefix = "banned_token:"

// BannedTokenStore denylists tokens as presence-only keys; the TTL on the
// key carries all the information, redis handles expiry.
type BannedTokenStore struct {
	client redis.UniversalClient
}

func NewBannedTokenStore(client redis.UniversalClient) *BannedTokenStore {
	return &BannedTokenStore{client: client}
}

func (s *BannedTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// The token's own expiry has already passed; a revocation entry
		// would outlive its usefulness before it was written.
		return nil
	}

	// SET is a plain overwrite, which makes re-revocation a no-op rather
	// than an error.
	if err := s.client.Set(ctx, bannedTokenKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis: revoke token: %w", err)
	}
	return nil
}

func (s *BannedTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, bannedTokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: check token: %w", err)
	}
	return n > 0, nil
}

func bannedTokenKey(token string) string {
	return bannedTokenKeyPrefix + token
}

var _ store.BannedTokenStore = (*BannedTokenStore)(nil)

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lodgepole/gatehouse/internal/auth/store"
)

// BannedTokenStore keeps revoked tokens with a per-entry deadline. Expiry
// is passive: entries past their deadline read as absent and are dropped
// on the next lookup, mirroring the TTL semantics of the redis driver.
type BannedTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time // token -> expiry deadline

	now func() time.Time // overridable in tests
}

func NewBannedTokenStore() *BannedTokenStore {
	return &BannedTokenStore{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *BannedTokenStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-revoking simply refreshes the deadline; never an error.
	s.tokens[token] = s.now().Add(ttl)
	return nil
}

func (s *BannedTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	deadline, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if s.now().After(deadline) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Revoke may have
		// refreshed the entry between the two lock acquisitions.
		if d, ok := s.tokens[token]; ok && s.now().After(d) {
			delete(s.tokens, token)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

var _ store.BannedTokenStore = (*BannedTokenStore)(nil)

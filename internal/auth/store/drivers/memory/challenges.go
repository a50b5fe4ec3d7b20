package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
)

type challengeEntry struct {
	challenge domain.Challenge
	deadline  time.Time
}

// ChallengeStore holds at most one live challenge per email. Put always
// overwrites, so the last completed write wins; expiry is passive like the
// banned token store.
type ChallengeStore struct {
	mu      sync.RWMutex
	entries map[string]challengeEntry

	now func() time.Time
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{
		entries: make(map[string]challengeEntry),
		now:     time.Now,
	}
}

func (s *ChallengeStore) Put(_ context.Context, email domain.Email, ch domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email.String()] = challengeEntry{
		challenge: ch,
		deadline:  s.now().Add(store.ChallengeTTL),
	}
	return nil
}

func (s *ChallengeStore) Get(_ context.Context, email domain.Email) (domain.Challenge, error) {
	s.mu.RLock()
	entry, ok := s.entries[email.String()]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.deadline) {
		return domain.Challenge{}, store.ErrNotFound
	}
	return entry.challenge, nil
}

func (s *ChallengeStore) Remove(_ context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email.String())
	return nil
}

var _ store.ChallengeStore = (*ChallengeStore)(nil)

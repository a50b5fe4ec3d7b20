package memory

import (
	"context"
	"sync"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
	"github.com/lodgepole/gatehouse/pkg/cryptox"
)

// UserStore is the in-process user record store. Reads share the lock;
// Add holds it exclusively across the existence check and the insert, which
// is what makes concurrent duplicate adds yield exactly one success.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) Add(_ context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := u.Email.String()
	if _, ok := s.users[key]; ok {
		return store.ErrAlreadyExists
	}
	s.users[key] = u
	return nil
}

func (s *UserStore) Get(_ context.Context, email domain.Email) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email.String()]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error {
	u, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(password.Reveal(), u.PasswordHash); err != nil {
		return store.ErrInvalidCredentials
	}
	return nil
}

func (s *UserStore) Delete(_ context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := email.String()
	if _, ok := s.users[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, key)
	return nil
}

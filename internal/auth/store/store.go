package store

import (
	"context"
	"errors"
	"time"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
)

var (
	ErrNotFound           = errors.New("store: not found")
	ErrAlreadyExists      = errors.New("store: already exists")
	ErrInvalidCredentials = errors.New("store: invalid credentials")
)

// ChallengeTTL is how long a pending two-factor challenge stays alive.
// Every ChallengeStore implementation applies it on each Put.
const ChallengeTTL = 10 * time.Minute

// UserStore is the durable mapping from email to account record. Concrete
// drivers (sqlite, memory) implement it; one is selected at wiring time.
type UserStore interface {
	// Add inserts a new user. The existence check is atomic: of two
	// concurrent adds for the same email exactly one succeeds, the other
	// gets ErrAlreadyExists.
	Add(ctx context.Context, u domain.User) error

	// Get returns the record for email, or ErrNotFound.
	Get(ctx context.Context, email domain.Email) (domain.User, error)

	// ValidateCredentials compares password against the stored hash.
	// Returns ErrNotFound for an unknown email and ErrInvalidCredentials
	// on a mismatch; callers decide whether to collapse the two.
	ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error

	// Delete removes the record, or returns ErrNotFound.
	Delete(ctx context.Context, email domain.Email) error
}

// BannedTokenStore is the set of revoked session tokens. Entries carry a
// per-entry TTL and self-expire in the backend; nothing here runs sweep
// loops.
type BannedTokenStore interface {
	// Revoke denylists token for ttl. Idempotent: revoking an
	// already-revoked token succeeds.
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether token is currently denylisted.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ChallengeStore maps an email to its single pending two-factor challenge.
type ChallengeStore interface {
	// Put stores the challenge under email with ChallengeTTL, overwriting
	// any existing entry. Concurrent puts race; the last completed one
	// wins outright, no merging.
	Put(ctx context.Context, email domain.Email, ch domain.Challenge) error

	// Get returns the live challenge for email, or ErrNotFound when the
	// entry is absent or expired.
	Get(ctx context.Context, email domain.Email) (domain.Challenge, error)

	// Remove deletes the entry. Removing a non-existent entry succeeds.
	Remove(ctx context.Context, email domain.Email) error
}

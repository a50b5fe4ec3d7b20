package service

import (
	"fmt"
	"time"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/pkg/jwtx"
)

// TokenService mints and verifies session tokens. Tokens are stateless
// HS256 JWTs carrying the account email as subject; revocation is layered
// on top by the workflow, not here.
type TokenService struct {
	Signer *jwtx.HS256
	Issuer string
	TTL    time.Duration
}

func NewTokenService(signer *jwtx.HS256, issuer string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &TokenService{Signer: signer, Issuer: issuer, TTL: ttl}
}

// Session is the verified content of a session token.
type Session struct {
	Email     domain.Email
	ExpiresAt time.Time
}

// Remaining reports how much lifetime the session has left.
func (s Session) Remaining(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}

// Mint issues a fresh session token for the given account.
func (s *TokenService) Mint(email domain.Email) (string, error) {
	claims := jwtx.NewSessionClaims(email.String(), s.Issuer, s.TTL, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature and expiry and extracts the
// session it represents. The subject must parse as a valid email, so a
// token minted for anything else is rejected outright.
func (s *TokenService) Verify(token string) (Session, error) {
	claims, err := s.Signer.Verify(token)
	if err != nil {
		return Session{}, err
	}

	email, err := domain.ParseEmail(claims.Subject)
	if err != nil {
		return Session{}, fmt.Errorf("token subject: %w", err)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return Session{Email: email, ExpiresAt: expiresAt}, nil
}

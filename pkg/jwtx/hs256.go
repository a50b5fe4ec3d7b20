package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyKey   = errors.New("jwtx: signing key must not be empty")
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// HS256 signs and verifies session tokens with a single process-wide
// symmetric key. The key is loaded once at startup and is never exposed
// through logs or errors.
type HS256 struct {
	key []byte
}

// NewHS256 wraps the signing key. An empty key is an operator error and is
// rejected outright rather than silently producing forgeable tokens.
func NewHS256(key []byte) (*HS256, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return &HS256{key: key}, nil
}

// Sign produces the compact serialized token for claims.
func (h *HS256) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// It deliberately knows nothing about revocation.
func (h *HS256) Verify(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) { return h.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}

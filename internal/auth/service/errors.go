package service

import "errors"

var (
	// ErrUserAlreadyExists means an account with that email already exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound means no account with that email exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrIncorrectCredentials covers unknown accounts, wrong passwords and
	// failed 2FA exchanges alike, so responses never reveal which part of
	// the submission was wrong.
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	// ErrMissingToken means the caller supplied no session token at all.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken means the supplied session token is malformed,
	// expired, forged or revoked.
	ErrInvalidToken = errors.New("invalid token")
)

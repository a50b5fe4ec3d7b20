package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
	"github.com/lodgepole/gatehouse/pkg/cryptox"
	"github.com/lodgepole/gatehouse/pkg/slogx"
)

// AuthService drives the account and session lifecycle: signup, login
// with optional two-factor, logout via denylisting and token
// verification. It owns no state of its own; everything lives behind the
// store interfaces so the same workflow runs against sqlite, redis or
// the in-memory drivers.
type AuthService struct {
	Users        store.UserStore
	BannedTokens store.BannedTokenStore
	Challenges   store.ChallengeStore
	Tokens       *TokenService
	Codes        CodeSender
}

func NewAuthService(users store.UserStore, banned store.BannedTokenStore, challenges store.ChallengeStore, tokens *TokenService, codes CodeSender) *AuthService {
	return &AuthService{
		Users:        users,
		BannedTokens: banned,
		Challenges:   challenges,
		Tokens:       tokens,
		Codes:        codes,
	}
}

// TwoFactorPrompt tells the caller a login needs a second factor before
// a session is issued. The code itself travels out of band; only the
// attempt id goes back to the client.
type TwoFactorPrompt struct {
	AttemptID domain.ChallengeID
}

// LoginOutcome is the result of a successful password check: either a
// ready session token, or a pending two-factor prompt. Exactly one of
// the two fields is set.
type LoginOutcome struct {
	Token     string
	TwoFactor *TwoFactorPrompt
}

// Signup registers a new account. Validation failures surface as
// domain.ValidationError; a taken email surfaces as ErrUserAlreadyExists.
func (s *AuthService) Signup(ctx context.Context, rawEmail, rawPassword string, requiresTwoFA bool) error {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return err
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password.Reveal())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// Finish the insert even if the caller hangs up mid-request.
	err = s.Users.Add(context.WithoutCancel(ctx), domain.User{
		Email:         email,
		PasswordHash:  hash,
		RequiresTwoFA: requiresTwoFA,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}

// Login checks the password and either issues a session token or, for
// two-factor accounts, parks a fresh challenge and returns its attempt
// id. Unknown emails and wrong passwords both come back as
// ErrIncorrectCredentials so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, rawEmail, rawPassword string) (LoginOutcome, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return LoginOutcome{}, err
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return LoginOutcome{}, err
	}

	err = s.Users.ValidateCredentials(ctx, email, password)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidCredentials) {
		return LoginOutcome{}, ErrIncorrectCredentials
	}
	if err != nil {
		return LoginOutcome{}, fmt.Errorf("validate credentials: %w", err)
	}

	user, err := s.Users.Get(ctx, email)
	if err != nil {
		return LoginOutcome{}, fmt.Errorf("load user: %w", err)
	}

	if !user.RequiresTwoFA {
		token, err := s.Tokens.Mint(email)
		if err != nil {
			return LoginOutcome{}, err
		}
		return LoginOutcome{Token: token}, nil
	}

	challenge := domain.Challenge{
		AttemptID: domain.NewChallengeID(),
		Code:      domain.NewOneTimeCode(),
	}

	// A fresh login supersedes any earlier pending challenge for the
	// same account; Put overwrites.
	if err := s.Challenges.Put(context.WithoutCancel(ctx), email, challenge); err != nil {
		return LoginOutcome{}, fmt.Errorf("store challenge: %w", err)
	}

	// Delivery is fire-and-forget: the challenge is already parked, so
	// the login proceeds and the user can retry once delivery recovers.
	if err := s.Codes.SendCode(ctx, email, challenge.Code); err != nil {
		slogx.FromContext(ctx).Error("2fa code delivery failed", "err", err)
	}

	return LoginOutcome{TwoFactor: &TwoFactorPrompt{AttemptID: challenge.AttemptID}}, nil
}

// VerifyTwoFactor completes a pending two-factor login. The submitted
// attempt id and code must both match the stored challenge exactly; any
// mismatch, or an absent or expired challenge, is ErrIncorrectCredentials.
// A mismatch leaves the challenge in place so the user can retry until
// the entry expires; success consumes it before the token is minted, so
// a given challenge yields at most one session.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (string, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return "", err
	}
	attemptID, err := domain.ParseChallengeID(rawAttemptID)
	if err != nil {
		return "", err
	}
	code, err := domain.ParseOneTimeCode(rawCode)
	if err != nil {
		return "", err
	}

	challenge, err := s.Challenges.Get(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrIncorrectCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load challenge: %w", err)
	}

	if challenge.AttemptID != attemptID || challenge.Code != code {
		return "", ErrIncorrectCredentials
	}

	if err := s.Challenges.Remove(context.WithoutCancel(ctx), email); err != nil {
		return "", fmt.Errorf("consume challenge: %w", err)
	}

	return s.Tokens.Mint(email)
}

// Logout revokes the session token. The token must still verify and not
// already be revoked, otherwise ErrInvalidToken; an empty token is
// ErrMissingToken. The denylist entry lives exactly as long as the token
// itself had left, after which expiry rejects it anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}

	session, err := s.verifyLive(ctx, token)
	if err != nil {
		return err
	}

	remaining := session.Remaining(time.Now())
	if err := s.BannedTokens.Revoke(context.WithoutCancel(ctx), token, remaining); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// VerifyToken checks that token is a live, unrevoked session and returns
// the account it belongs to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (domain.Email, error) {
	session, err := s.verifyLive(ctx, token)
	if err != nil {
		return domain.Email{}, err
	}
	return session.Email, nil
}

// DeleteUser removes the account record. Sessions already issued for it
// keep verifying until they expire; only logout denylists them.
func (s *AuthService) DeleteUser(ctx context.Context, rawEmail string) error {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return err
	}

	err = s.Users.Delete(context.WithoutCancel(ctx), email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// verifyLive runs the shared token checks: cryptographically valid, not
// expired, not denylisted. An empty token fails verification like any
// other malformed one; only Logout distinguishes an absent token.
func (s *AuthService) verifyLive(ctx context.Context, token string) (Session, error) {
	session, err := s.Tokens.Verify(token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	revoked, err := s.BannedTokens.IsRevoked(ctx, token)
	if err != nil {
		return Session{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Session{}, ErrInvalidToken
	}
	return session, nil
}

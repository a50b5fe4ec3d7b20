package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "modernc.org/sqlite"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
	"github.com/lodgepole/gatehouse/pkg/cryptox"
)

// SQLite extended result codes for constraint violations on the primary key
// and unique indexes.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// Store is the relational user record store. The email column is the
// primary key, so duplicate-add atomicity is enforced by the database
// rather than an application-level check.
type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Add(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, requires_2fa) VALUES (?, ?, ?)`,
		u.Email.String(), u.PasswordHash, u.RequiresTwoFA,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("sqlite: add user: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, email domain.Email) (domain.User, error) {
	var (
		rawEmail string
		hash     string
		twoFA    bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT email, password_hash, requires_2fa FROM users WHERE email = ?`,
		email.String(),
	).Scan(&rawEmail, &hash, &twoFA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, store.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("sqlite: get user: %w", err)
	}

	parsed, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return domain.User{}, fmt.Errorf("sqlite: stored email corrupt: %w", err)
	}

	return domain.User{Email: parsed, PasswordHash: hash, RequiresTwoFA: twoFA}, nil
}

func (s *Store) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error {
	u, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(password.Reveal(), u.PasswordHash); err != nil {
		return store.ErrInvalidCredentials
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, email domain.Email) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email.String())
	if err != nil {
		return fmt.Errorf("sqlite: delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete user: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isConstraintViolation(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqliteConstraintPrimaryKey || code == sqliteConstraintUnique
}

var _ store.UserStore = (*Store)(nil)

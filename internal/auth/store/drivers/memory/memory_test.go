package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
	"github.com/lodgepole/gatehouse/pkg/cryptox"
)

func mustEmail(t *testing.T, raw string) domain.Email {
	t.Helper()
	email, err := domain.ParseEmail(raw)
	require.NoError(t, err)
	return email
}

func mustPassword(t *testing.T, raw string) domain.Password {
	t.Helper()
	pw, err := domain.ParsePassword(raw)
	require.NoError(t, err)
	return pw
}

func testUser(t *testing.T, email, password string, twoFA bool) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	return domain.User{
		Email:         mustEmail(t, email),
		PasswordHash:  hash,
		RequiresTwoFA: twoFA,
	}
}

func TestUserStoreAdd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserStore()
	u := testUser(t, "test@example.com", "P@55w0rd", true)

	require.NoError(t, users.Add(ctx, u))
	require.ErrorIs(t, users.Add(ctx, u), store.ErrAlreadyExists)
}

func TestUserStoreAddConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserStore()
	u := testUser(t, "race@example.com", "longenough", false)

	const workers = 16
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = users.Add(ctx, u)
		}()
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, store.ErrAlreadyExists)
		}
	}
	require.Equal(t, 1, successes, "exactly one concurrent add may win")
}

func TestUserStoreGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserStore()
	u := testUser(t, "foo@bar.com", "ABCD1234", false)
	require.NoError(t, users.Add(ctx, u))

	got, err := users.Get(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = users.Get(ctx, mustEmail(t, "no@email.com"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserStoreValidateCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserStore()
	u := testUser(t, "foo@bar.com", "P@55w0rd", true)
	require.NoError(t, users.Add(ctx, u))

	require.NoError(t, users.ValidateCredentials(ctx, u.Email, mustPassword(t, "P@55w0rd")))

	err := users.ValidateCredentials(ctx, u.Email, mustPassword(t, "P155w0rd"))
	require.ErrorIs(t, err, store.ErrInvalidCredentials)

	err = users.ValidateCredentials(ctx, mustEmail(t, "lorem@ipsum.com"), mustPassword(t, "P@55w0rd"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserStoreDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserStore()
	u := testUser(t, "test@example.com", "P@55w0rd", true)

	// re-add and re-delete should work repeatedly
	for range 2 {
		require.NoError(t, users.Add(ctx, u))
		require.NoError(t, users.Delete(ctx, u.Email))
		require.ErrorIs(t, users.Delete(ctx, u.Email), store.ErrNotFound)
	}
}

func TestBannedTokenStoreRevokeIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	banned := NewBannedTokenStore()

	require.NoError(t, banned.Revoke(ctx, "token", time.Minute))
	require.NoError(t, banned.Revoke(ctx, "token", time.Minute))

	revoked, err := banned.IsRevoked(ctx, "token")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = banned.IsRevoked(ctx, "other")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestBannedTokenStoreEntriesExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	banned := NewBannedTokenStore()

	base := time.Now()
	banned.now = func() time.Time { return base }
	require.NoError(t, banned.Revoke(ctx, "token", time.Minute))

	banned.now = func() time.Time { return base.Add(59 * time.Second) }
	revoked, err := banned.IsRevoked(ctx, "token")
	require.NoError(t, err)
	require.True(t, revoked)

	banned.now = func() time.Time { return base.Add(61 * time.Second) }
	revoked, err = banned.IsRevoked(ctx, "token")
	require.NoError(t, err)
	require.False(t, revoked, "entry must read as absent once the ttl elapses")
}

func TestChallengeStoreSupersession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	challenges := NewChallengeStore()
	email := mustEmail(t, "foo@bar.com")

	first := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}
	second := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}

	require.NoError(t, challenges.Put(ctx, email, first))
	require.NoError(t, challenges.Put(ctx, email, second))

	got, err := challenges.Get(ctx, email)
	require.NoError(t, err)
	require.Equal(t, second, got, "the later put must fully supersede the earlier one")
}

func TestChallengeStoreRemoveIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	challenges := NewChallengeStore()
	email := mustEmail(t, "foo@bar.com")

	require.NoError(t, challenges.Remove(ctx, email), "removing a missing entry is not an error")

	ch := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}
	require.NoError(t, challenges.Put(ctx, email, ch))
	require.NoError(t, challenges.Remove(ctx, email))

	_, err := challenges.Get(ctx, email)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, challenges.Remove(ctx, email))
}

func TestChallengeStoreEntriesExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	challenges := NewChallengeStore()
	email := mustEmail(t, "foo@bar.com")

	base := time.Now()
	challenges.now = func() time.Time { return base }

	ch := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}
	require.NoError(t, challenges.Put(ctx, email, ch))

	challenges.now = func() time.Time { return base.Add(store.ChallengeTTL + time.Second) }
	_, err := challenges.Get(ctx, email)
	require.ErrorIs(t, err, store.ErrNotFound)
}

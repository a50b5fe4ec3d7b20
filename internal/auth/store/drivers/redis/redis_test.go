package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func mustEmail(t *testing.T, raw string) domain.Email {
	t.Helper()
	email, err := domain.ParseEmail(raw)
	require.NoError(t, err)
	return email
}

func TestBannedTokenStoreRevoke(t *testing.T) {
	t.Parallel()

	mr, client := newTestClient(t)
	banned := NewBannedTokenStore(client)
	ctx := context.Background()

	require.NoError(t, banned.Revoke(ctx, "token", time.Minute))
	require.NoError(t, banned.Revoke(ctx, "token", time.Minute), "revoke must be idempotent")

	revoked, err := banned.IsRevoked(ctx, "token")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = banned.IsRevoked(ctx, "unseen")
	require.NoError(t, err)
	require.False(t, revoked)

	mr.FastForward(2 * time.Minute)

	revoked, err = banned.IsRevoked(ctx, "token")
	require.NoError(t, err)
	require.False(t, revoked, "entry must expire with its ttl")
}

func TestBannedTokenStoreRevokeExpiredTokenIsNoop(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t)
	banned := NewBannedTokenStore(client)
	ctx := context.Background()

	require.NoError(t, banned.Revoke(ctx, "stale", -time.Second))

	revoked, err := banned.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestChallengeStoreRoundTrip(t *testing.T) {
	t.Parallel()

	mr, client := newTestClient(t)
	challenges := NewChallengeStore(client)
	ctx := context.Background()
	email := mustEmail(t, "foo@bar.com")

	ch := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}
	require.NoError(t, challenges.Put(ctx, email, ch))

	got, err := challenges.Get(ctx, email)
	require.NoError(t, err)
	require.Equal(t, ch, got)

	// entry becomes unreachable after the fixed ttl
	mr.FastForward(store.ChallengeTTL + time.Second)
	_, err = challenges.Get(ctx, email)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestChallengeStorePutSupersedes(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t)
	challenges := NewChallengeStore(client)
	ctx := context.Background()
	email := mustEmail(t, "foo@bar.com")

	first := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}
	second := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}

	require.NoError(t, challenges.Put(ctx, email, first))
	require.NoError(t, challenges.Put(ctx, email, second))

	got, err := challenges.Get(ctx, email)
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestChallengeStoreRemove(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t)
	challenges := NewChallengeStore(client)
	ctx := context.Background()
	email := mustEmail(t, "foo@bar.com")

	require.NoError(t, challenges.Remove(ctx, email), "removing a missing entry succeeds")

	ch := domain.Challenge{AttemptID: domain.NewChallengeID(), Code: domain.NewOneTimeCode()}
	require.NoError(t, challenges.Put(ctx, email, ch))
	require.NoError(t, challenges.Remove(ctx, email))

	_, err := challenges.Get(ctx, email)
	require.ErrorIs(t, err, store.ErrNotFound)
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/store"
)

const challengeKeyPrefix = "two_fa_code:"

// challengeRecord is the wire shape of a pending challenge: both fields as
// plain UUID/digit strings.
type challengeRecord struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

// ChallengeStore keeps the pending two-factor challenge per email in redis
// with the fixed challenge TTL applied on every write. SET overwrites, so
// the last completed put wins and supersedes any earlier challenge.
type ChallengeStore struct {
	client redis.UniversalClient
}

func NewChallengeStore(client redis.UniversalClient) *ChallengeStore {
	return &ChallengeStore{client: client}
}

func (s *ChallengeStore) Put(ctx context.Context, email domain.Email, ch domain.Challenge) error {
	payload, err := json.Marshal(challengeRecord{
		ChallengeID: ch.AttemptID.String(),
		Code:        ch.Code.String(),
	})
	if err != nil {
		return fmt.Errorf("redis: encode challenge: %w", err)
	}

	if err := s.client.Set(ctx, challengeKey(email), payload, store.ChallengeTTL).Err(); err != nil {
		return fmt.Errorf("redis: put challenge: %w", err)
	}
	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, email domain.Email) (domain.Challenge, error) {
	raw, err := s.client.Get(ctx, challengeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Challenge{}, store.ErrNotFound
		}
		return domain.Challenge{}, fmt.Errorf("redis: get challenge: %w", err)
	}

	var rec challengeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.Challenge{}, fmt.Errorf("redis: decode challenge: %w", err)
	}

	attemptID, err := domain.ParseChallengeID(rec.ChallengeID)
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("redis: stored challenge id corrupt: %w", err)
	}
	code, err := domain.ParseOneTimeCode(rec.Code)
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("redis: stored code corrupt: %w", err)
	}

	return domain.Challenge{AttemptID: attemptID, Code: code}, nil
}

func (s *ChallengeStore) Remove(ctx context.Context, email domain.Email) error {
	// DEL of a missing key is a no-op, which gives Remove its idempotence.
	if err := s.client.Del(ctx, challengeKey(email)).Err(); err != nil {
		return fmt.Errorf("redis: remove challenge: %w", err)
	}
	return nil
}

func challengeKey(email domain.Email) string {
	return challengeKeyPrefix + email.String()
}

var _ store.ChallengeStore = (*ChallengeStore)(nil)

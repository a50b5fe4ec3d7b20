package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/google/uuid"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// ChallengeID is the opaque identifier binding a login attempt to its
// pending two-factor challenge.
type ChallengeID struct {
	value string
}

// ParseChallengeID accepts any syntactically valid UUID. The raw string is
// preserved as-is, so uppercase UUIDs round-trip unchanged.
func ParseChallengeID(raw string) (ChallengeID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return ChallengeID{}, validationErr("challenge id", "not a valid UUID")
	}
	return ChallengeID{value: raw}, nil
}

// NewChallengeID returns a fresh random v4 identifier. It never fails.
func NewChallengeID() ChallengeID {
	return ChallengeID{value: uuid.NewString()}
}

func (id ChallengeID) String() string { return id.value }

// OneTimeCode is the 6-digit code the user must present to complete a
// two-factor login. Leading zeros are significant, so it is a string all
// the way down.
type OneTimeCode struct {
	value string
}

// ParseOneTimeCode accepts exactly six ASCII digits.
func ParseOneTimeCode(raw string) (OneTimeCode, error) {
	if !codePattern.MatchString(raw) {
		return OneTimeCode{}, validationErr("code", "must be six digits")
	}
	return OneTimeCode{value: raw}, nil
}

// NewOneTimeCode draws a uniformly random code from 000000 to 999999.
func NewOneTimeCode() OneTimeCode {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// crypto/rand failing means the process is in no state to
		// issue credentials at all.
		panic(fmt.Sprintf("domain: one-time code entropy unavailable: %v", err))
	}
	return OneTimeCode{value: fmt.Sprintf("%06d", n.Int64())}
}

func (c OneTimeCode) String() string { return c.value }

// Challenge is the pending two-factor state for one email: the attempt it
// belongs to and the code that completes it.
type Challenge struct {
	AttemptID ChallengeID
	Code      OneTimeCode
}

package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	passwordMinChars = 8
	passwordMaxChars = 64
)

// Password is a validated plaintext password, held only long enough to be
// hashed or compared against a stored hash. It must never be logged or
// serialized; String redacts.
type Password struct {
	value string
}

// ParsePassword enforces the 8..64 length bounds, counted in Unicode code
// points rather than bytes. The error names the violated bound.
func ParsePassword(raw string) (Password, error) {
	n := utf8.RuneCountInString(raw)
	if n < passwordMinChars {
		return Password{}, validationErr("password",
			fmt.Sprintf("too short, should be %d to %d characters", passwordMinChars, passwordMaxChars))
	}
	if n > passwordMaxChars {
		return Password{}, validationErr("password",
			fmt.Sprintf("too long, should be %d to %d characters", passwordMinChars, passwordMaxChars))
	}
	return Password{value: raw}, nil
}

// Reveal returns the plaintext for hashing or comparison. Callers must not
// retain the result.
func (p Password) Reveal() string { return p.value }

func (p Password) String() string { return "[redacted]" }

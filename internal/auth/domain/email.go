package domain

import "regexp"

// emailPattern is the WHATWG HTML "valid e-mail address" grammar
// (https://html.spec.whatwg.org/multipage/input.html#valid-e-mail-address).
// It deliberately accepts dotless domains like "a@b" and rejects anything
// without an "@".
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// Email is a validated address. It is the user's primary key; equality is
// case-sensitive on the stored form.
type Email struct {
	value string
}

// ParseEmail validates raw against the email grammar. The stored form is
// the input verbatim, never normalized or mutated.
func ParseEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, validationErr("email", "not a valid email address")
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

package domain

import "fmt"

// ValidationError reports a malformed input value. It is always a client
// error; handlers map it to a 400 without echoing the offending value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

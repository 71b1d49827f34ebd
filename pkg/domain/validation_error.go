package domain

import "strings"

// ValidationError carries the field-rule messages for a rejected
// submission. It is an expected outcome, recovered at the HTTP boundary
// into a structured 400 payload.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

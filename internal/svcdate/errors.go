package svcdate

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed means the token does not have the shape of any svcs date
	// form, or one of its fields is not a number.
	ErrMalformed = errors.New("malformed svcs date")

	// ErrInvalidCalendar means every field parsed but the values do not name
	// a real time or date (minute 97, Aug 58, hour 24).
	ErrInvalidCalendar = errors.New("invalid calendar value")
)

// ParseError reports a token that could not be resolved. Kind is one of
// ErrMalformed or ErrInvalidCalendar, so callers can test with errors.Is.
type ParseError struct {
	Kind  error
	Token string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v %q", e.Kind, e.Token)
	if e.Field != "" {
		msg += ": bad " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(token, field string, err error) *ParseError {
	return &ParseError{Kind: ErrMalformed, Token: token, Field: field, Err: err}
}

func invalid(token, field string, err error) *ParseError {
	return &ParseError{Kind: ErrInvalidCalendar, Token: token, Field: field, Err: err}
}

// Package hkerror defines the typed failures raised while converting health
// records between their native and portable forms.
package hkerror

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure.
type Kind int

const (
	// InvalidValue: a required field is missing, a quantity cannot be
	// expressed in the expected unit, or a timestamp does not parse.
	InvalidValue Kind = iota + 1
	// InvalidType: an identifier, enumerant code or unit string does not
	// resolve to a known native construct.
	InvalidType
	// InvalidIdentifier: a kind lookup key is outside the closed enumeration.
	InvalidIdentifier
)

func (k Kind) String() string {
	switch k {
	case InvalidValue:
		return "invalid value"
	case InvalidType:
		return "invalid type"
	case InvalidIdentifier:
		return "invalid identifier"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a conversion failure with a human-readable description of the
// offending field or value.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidValue      = &Error{Kind: InvalidValue}
	ErrInvalidType       = &Error{Kind: InvalidType}
	ErrInvalidIdentifier = &Error{Kind: InvalidIdentifier}
)

// InvalidValuef returns an InvalidValue error.
func InvalidValuef(format string, args ...any) error {
	return &Error{Kind: InvalidValue, Msg: fmt.Sprintf(format, args...)}
}

// InvalidTypef returns an InvalidType error.
func InvalidTypef(format string, args ...any) error {
	return &Error{Kind: InvalidType, Msg: fmt.Sprintf(format, args...)}
}

// InvalidIdentifierf returns an InvalidIdentifier error.
func InvalidIdentifierf(format string, args ...any) error {
	return &Error{Kind: InvalidIdentifier, Msg: fmt.Sprintf(format, args...)}
}

// Missing reports a required field that was absent on the native object.
func Missing(field, owner string) error {
	return &Error{Kind: InvalidValue, Msg: fmt.Sprintf("missing %s for %s", field, owner)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

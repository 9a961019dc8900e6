package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrObjectAlreadyExists = errors.New("object already exists")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrAccessDenied        = errors.New("access denied")
	ErrInvalidState        = errors.New("invalid state")
)

// withCause appends the cause to msg in the common "(cause: ...)" form.
func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// sanitize flattens user supplied values so they cannot break log lines.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// IsValidation reports whether err describes malformed input rather than a
// lifecycle or infrastructure failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// ParamOf returns the offending parameter name carried by a validation error,
// or an empty string when err carries none.
func ParamOf(err error) string {
	var (
		required   *ValueIsRequiredError
		invalid    *ValueIsInvalidError
		outOfRange *ValueIsOutOfRangeError
	)
	switch {
	case errors.As(err, &required):
		return required.ParamName
	case errors.As(err, &invalid):
		return invalid.ParamName
	case errors.As(err, &outOfRange):
		return outOfRange.ParamName
	default:
		return ""
	}
}

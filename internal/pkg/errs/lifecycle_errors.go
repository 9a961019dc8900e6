package errs

import "fmt"

// AccessDeniedError is returned when the caller does not own the resource.
// The message deliberately names only the resource, never the reason.
type AccessDeniedError struct {
	Resource string
	Cause    error
}

func NewAccessDeniedError(resource string) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource}
}

func NewAccessDeniedErrorWithCause(resource string, cause error) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource, Cause: cause}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s to resource %s", ErrAccessDenied, e.Resource)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// InvalidStateError is returned when an operation is not legal for the current
// lifecycle state of an object: refusing an order without a performer,
// deactivating work in progress, parsing a malformed chat room name, etc.
type InvalidStateError struct {
	Object string
	State  string
	Action string
	Cause  error
}

func NewInvalidStateError(object, state, action string) *InvalidStateError {
	return &InvalidStateError{Object: object, State: state, Action: action}
}

func NewInvalidStateErrorWithCause(object, state, action string, cause error) *InvalidStateError {
	return &InvalidStateError{Object: object, State: state, Action: action, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(
		fmt.Sprintf("%s: cannot %s %s in state %s", ErrInvalidState, e.Action, e.Object, sanitize(e.State)),
		e.Cause,
	)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

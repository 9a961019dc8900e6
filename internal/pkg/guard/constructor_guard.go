// Package guard detects zero-value commands, queries and value objects that
// bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when
// no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its constructor. Embed it
// in commands and queries and call Validate before use; a zero value fails.
//
// Example usage:
//
//	var ErrCreateReplyCommandIsNotConstructed = errors.New("CreateReplyCommand must be created via NewCreateReplyCommand")
//
//	type CreateReplyCommand struct {
//	    caller  kernel.Caller
//	    orderID kernel.ID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c CreateReplyCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateReplyCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. A zero-value guard returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

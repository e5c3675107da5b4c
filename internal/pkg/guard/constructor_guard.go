// Package guard holds the constructor guard shared by commands, queries and value objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built through its constructor.
// The zero value reports itself as not constructed, so embedding a guard
// lets Validate tell a constructed command apart from a struct literal.
//
// Example:
//
//	var ErrStartOrderCommandIsNotConstructed = errors.New("StartOrderCommand must be created via NewStartOrderCommand")
//
//	type StartOrderCommand struct {
//	    plate kernel.PlateNumber
//	    guard guard.ConstructorGuard
//	}
//
//	func (c StartOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

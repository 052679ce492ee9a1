// Package guard detects domain values that were created as zero values instead
// of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects and aggregates. Only
// NewConstructorGuard sets its flag, so a struct literal or zero value fails
// Validate while a constructed one passes.
//
//	type Discount struct {
//	    percentage decimal.Decimal
//	    guard      guard.ConstructorGuard
//	}
//
//	func (d Discount) Validate() error {
//	    return d.guard.Validate(ErrDiscountIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// for a guard that was not created with NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}

package kernel

import (
	"errors"
	"fmt"

	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

// Role is the kind of participant acting on the system.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RolePharmacy Role = "PHARMACY"
	RoleCourier  Role = "COURIER"
	RoleAdmin    Role = "ADMIN"
)

// Validate rejects roles other than the four known ones.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RolePharmacy, RoleCourier, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", string(r)))
	}
}

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Actor is the authenticated caller of an operation. Its ID is the id of the
// customer, pharmacy or courier it represents; for admins it is an opaque id.
type Actor struct {
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an authenticated caller. Both the id and the role must be
// valid.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrActorIsNotConstructed for a zero Actor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the id of the participant the actor represents.
func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor plays role and represents the participant id.
func (a Actor) Is(role Role, id UUID) bool {
	return a.Validate() == nil && a.role == role && a.id.IsEqual(id)
}

// Require returns a Forbidden error unless the actor has the given role.
func (a Actor) Require(action string, role Role) error {
	if err := a.Validate(); err != nil {
		return errs.NewForbiddenError(action, "actor is not authenticated")
	}
	if a.role != role {
		return errs.NewForbiddenError(action, fmt.Sprintf("role %s is required, actor is %s", role, a.role))
	}
	return nil
}

// String renders the actor for logs.
func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.role, a.id)
}

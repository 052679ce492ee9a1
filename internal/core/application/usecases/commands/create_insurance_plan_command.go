package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrCreateInsurancePlanCommandIsNotConstructed = errors.New(
	"CreateInsurancePlanCommand must be created via NewCreateInsurancePlanCommand constructor",
)

// CreateInsurancePlanCommand adds an insurance plan to the catalog. Only
// administrators manage plans.
type CreateInsurancePlanCommand struct {
	actor        kernel.Actor
	planID       kernel.UUID
	name         string
	variant      string
	memberNumber string

	guard guard.ConstructorGuard
}

// NewCreateInsurancePlanCommand creates a command to add a plan. The actor
// must be an administrator.
func NewCreateInsurancePlanCommand(
	actor kernel.Actor,
	planID kernel.UUID,
	name, variant, memberNumber string,
) (CreateInsurancePlanCommand, error) {
	if err := errors.Join(
		actor.Require("create insurance plan", kernel.RoleAdmin),
		planID.Validate(),
	); err != nil {
		return CreateInsurancePlanCommand{}, err
	}

	return CreateInsurancePlanCommand{
		actor:        actor,
		planID:       planID,
		name:         name,
		variant:      variant,
		memberNumber: memberNumber,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateInsurancePlanCommand) Validate() error {
	return c.guard.Validate(ErrCreateInsurancePlanCommandIsNotConstructed)
}

func (c CreateInsurancePlanCommand) PlanID() kernel.UUID  { return c.planID }
func (c CreateInsurancePlanCommand) Name() string         { return c.name }
func (c CreateInsurancePlanCommand) Variant() string      { return c.variant }
func (c CreateInsurancePlanCommand) MemberNumber() string { return c.memberNumber }

package insurance

import (
	"errors"
	"strings"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

var ErrPlanIsNotConstructed = errs.NewValueIsRequiredError("insurance plan must be created via NewPlan")

// Plan is an insurance plan customers can be affiliated with, e.g. "OSDE 310".
type Plan struct {
	id           kernel.UUID
	name         string
	variant      string
	memberNumber string
	guard        guard.ConstructorGuard
}

// NewPlan creates a plan. memberNumber identifies the plan with the insurer and
// must be unique across plans.
func NewPlan(id kernel.UUID, name, variant, memberNumber string) (*Plan, error) {
	p := &Plan{
		guard:   guard.NewConstructorGuard(),
		variant: strings.TrimSpace(variant),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setMemberNumber(memberNumber),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePlan rebuilds a persisted plan.
func RestorePlan(id kernel.UUID, name, variant, memberNumber string) (*Plan, error) {
	return NewPlan(id, name, variant, memberNumber)
}

// Validate ensures the plan was created through a constructor.
func (p *Plan) Validate() error {
	if p == nil {
		return ErrPlanIsNotConstructed
	}
	return p.guard.Validate(ErrPlanIsNotConstructed)
}

func (p *Plan) ID() kernel.UUID      { return p.id }
func (p *Plan) Name() string         { return p.name }
func (p *Plan) Variant() string      { return p.variant }
func (p *Plan) MemberNumber() string { return p.memberNumber }

func (p *Plan) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Plan) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Plan) setMemberNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("member number")
	}
	p.memberNumber = number
	return nil
}

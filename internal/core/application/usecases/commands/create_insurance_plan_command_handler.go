package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/insurance"
)

// CreateInsurancePlanCommandHandler persists a new insurance plan.
type CreateInsurancePlanCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateInsurancePlanCommandHandler creates a handler for plan creation.
func NewCreateInsurancePlanCommandHandler(uowFactory UoWFactory) *CreateInsurancePlanCommandHandler {
	return &CreateInsurancePlanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the plan. A member number already in use is a Conflict.
func (h *CreateInsurancePlanCommandHandler) Handle(ctx context.Context, cmd CreateInsurancePlanCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	plan, err := insurance.NewPlan(cmd.PlanID(), cmd.Name(), cmd.Variant(), cmd.MemberNumber())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.InsuranceRepository().AddPlan(ctx, plan); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

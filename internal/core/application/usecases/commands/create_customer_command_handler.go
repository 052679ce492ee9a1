package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/customer"
	"farmadelivery/internal/core/ports"
)

// CreateCustomerCommandHandler registers a customer. The address is geocoded
// when it arrives without coordinates.
type CreateCustomerCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
}

// NewCreateCustomerCommandHandler creates a handler for customer registration.
func NewCreateCustomerCommandHandler(uowFactory UoWFactory, geocoder ports.Geocoder) *CreateCustomerCommandHandler {
	return &CreateCustomerCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

// Handle checks that the referenced insurance plan exists before saving the
// customer.
func (h *CreateCustomerCommandHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	address := locate(ctx, h.geocoder, cmd.Address())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.PlanID() != nil {
		if _, err := uow.InsuranceRepository().GetPlan(ctx, *cmd.PlanID()); err != nil {
			return requireFound("plan_id", err)
		}
	}

	c, err := customer.NewCustomer(
		cmd.CustomerID(),
		cmd.Name(),
		address,
		cmd.PlanID(),
		cmd.AffiliateNumber(),
	)
	if err != nil {
		return err
	}

	if err = uow.CustomerRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

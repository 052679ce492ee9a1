package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand registers a customer with their delivery address and,
// optionally, the insurance plan they are affiliated with.
type CreateCustomerCommand struct {
	customerID      kernel.UUID
	name            string
	address         kernel.Address
	planID          *kernel.UUID
	affiliateNumber string

	guard guard.ConstructorGuard
}

// NewCreateCustomerCommand creates a command to register a customer.
// The referenced plan is checked by the handler.
func NewCreateCustomerCommand(
	customerID kernel.UUID,
	name string,
	address kernel.Address,
	planID *kernel.UUID,
	affiliateNumber string,
) (CreateCustomerCommand, error) {
	if err := errors.Join(customerID.Validate(), address.Validate()); err != nil {
		return CreateCustomerCommand{}, err
	}

	cmd := CreateCustomerCommand{
		customerID:      customerID,
		name:            name,
		address:         address,
		affiliateNumber: affiliateNumber,
		guard:           guard.NewConstructorGuard(),
	}
	if planID != nil {
		id := *planID
		cmd.planID = &id
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateCustomerCommand) Name() string            { return c.name }
func (c CreateCustomerCommand) Address() kernel.Address { return c.address }
func (c CreateCustomerCommand) PlanID() *kernel.UUID    { return c.planID }
func (c CreateCustomerCommand) AffiliateNumber() string { return c.affiliateNumber }

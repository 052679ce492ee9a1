package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is the pharmacy refusing an order that has not left the
// store, typically because the prescription is not valid.
type CancelOrderCommand struct {
	orderAction
}

// NewCancelOrderCommand creates a cancellation on behalf of a pharmacy user.
func NewCancelOrderCommand(actor kernel.Actor, orderID kernel.UUID) (CancelOrderCommand, error) {
	action, err := newOrderAction(actor, orderID, "cancel order", kernel.RolePharmacy)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

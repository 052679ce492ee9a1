package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand is the assigned courier handing the order to the customer.
type DeliverOrderCommand struct {
	orderAction
}

// NewDeliverOrderCommand creates a delivery confirmation for a courier actor.
func NewDeliverOrderCommand(actor kernel.Actor, orderID kernel.UUID) (DeliverOrderCommand, error) {
	action, err := newOrderAction(actor, orderID, "deliver order", kernel.RoleCourier)
	if err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand hides an order from the acting courier's available
// orders. Other couriers still see it and may accept it.
type RejectOrderCommand struct {
	orderAction
}

// NewRejectOrderCommand creates a rejection for a courier actor.
func NewRejectOrderCommand(actor kernel.Actor, orderID kernel.UUID) (RejectOrderCommand, error) {
	action, err := newOrderAction(actor, orderID, "reject order", kernel.RoleCourier)
	if err != nil {
		return RejectOrderCommand{}, err
	}
	return RejectOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a courier taking a ready order for delivery.
type AcceptOrderCommand struct {
	orderAction
}

// NewAcceptOrderCommand creates an acceptance for a courier actor.
func NewAcceptOrderCommand(actor kernel.Actor, orderID kernel.UUID) (AcceptOrderCommand, error) {
	action, err := newOrderAction(actor, orderID, "accept order", kernel.RoleCourier)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

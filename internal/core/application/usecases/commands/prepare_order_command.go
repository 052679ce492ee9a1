package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
)

var ErrPrepareOrderCommandIsNotConstructed = errors.New(
	"PrepareOrderCommand must be created via NewPrepareOrderCommand constructor",
)

// PrepareOrderCommand is the pharmacy confirming a pending order and starting
// to prepare it. An attached prescription is considered validated.
type PrepareOrderCommand struct {
	orderAction
}

// NewPrepareOrderCommand creates the command for a pharmacy actor.
func NewPrepareOrderCommand(actor kernel.Actor, orderID kernel.UUID) (PrepareOrderCommand, error) {
	action, err := newOrderAction(actor, orderID, "prepare order", kernel.RolePharmacy)
	if err != nil {
		return PrepareOrderCommand{}, err
	}
	return PrepareOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c PrepareOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrepareOrderCommandIsNotConstructed)
}

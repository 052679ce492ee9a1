package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand is the pharmacy handing a prepared order over for
// courier pickup.
type MarkOrderReadyCommand struct {
	orderAction
}

// NewMarkOrderReadyCommand creates the command for a pharmacy actor.
func NewMarkOrderReadyCommand(actor kernel.Actor, orderID kernel.UUID) (MarkOrderReadyCommand, error) {
	action, err := newOrderAction(actor, orderID, "mark order ready", kernel.RolePharmacy)
	if err != nil {
		return MarkOrderReadyCommand{}, err
	}
	return MarkOrderReadyCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

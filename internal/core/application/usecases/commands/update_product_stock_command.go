package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrUpdateProductStockCommandIsNotConstructed = errors.New(
	"UpdateProductStockCommand must be created via NewUpdateProductStockCommand constructor",
)

// UpdateProductStockCommand sets the units on hand of a product after a
// pharmacy restock or count.
type UpdateProductStockCommand struct {
	actor     kernel.Actor
	productID kernel.UUID
	stock     int

	guard guard.ConstructorGuard
}

// NewUpdateProductStockCommand creates a stock update for a pharmacy actor.
func NewUpdateProductStockCommand(actor kernel.Actor, productID kernel.UUID, stock int) (UpdateProductStockCommand, error) {
	if err := errors.Join(
		actor.Require("update stock", kernel.RolePharmacy),
		productID.Validate(),
	); err != nil {
		return UpdateProductStockCommand{}, err
	}

	return UpdateProductStockCommand{
		actor:     actor,
		productID: productID,
		stock:     stock,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductStockCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductStockCommandIsNotConstructed)
}

func (c UpdateProductStockCommand) Actor() kernel.Actor    { return c.actor }
func (c UpdateProductStockCommand) ProductID() kernel.UUID { return c.productID }
func (c UpdateProductStockCommand) Stock() int             { return c.stock }

package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

var ErrAddProductCommandIsNotConstructed = errors.New(
	"AddProductCommand must be created via NewAddProductCommand constructor",
)

// AddProductCommand adds a product to the acting pharmacy's catalog.
type AddProductCommand struct {
	actor      kernel.Actor
	productID  kernel.UUID
	pharmacyID kernel.UUID
	details    pharmacy.ProductDetails
	stock      int

	guard guard.ConstructorGuard
}

// NewAddProductCommand creates a command to add a product. Only the pharmacy
// owning the catalog may add to it.
func NewAddProductCommand(
	actor kernel.Actor,
	productID kernel.UUID,
	pharmacyID kernel.UUID,
	details pharmacy.ProductDetails,
	stock int,
) (AddProductCommand, error) {
	if err := errors.Join(
		actor.Require("add product", kernel.RolePharmacy),
		productID.Validate(),
		pharmacyID.Validate(),
	); err != nil {
		return AddProductCommand{}, err
	}

	if !actor.Is(kernel.RolePharmacy, pharmacyID) {
		return AddProductCommand{}, errs.NewForbiddenError("add product", "pharmacy can only manage its own catalog")
	}

	return AddProductCommand{
		actor:      actor,
		productID:  productID,
		pharmacyID: pharmacyID,
		details:    details,
		stock:      stock,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddProductCommandIsNotConstructed if validation fails.
func (c AddProductCommand) Validate() error {
	return c.guard.Validate(ErrAddProductCommandIsNotConstructed)
}

func (c AddProductCommand) ProductID() kernel.UUID           { return c.productID }
func (c AddProductCommand) PharmacyID() kernel.UUID          { return c.pharmacyID }
func (c AddProductCommand) Details() pharmacy.ProductDetails { return c.details }
func (c AddProductCommand) Stock() int                       { return c.stock }

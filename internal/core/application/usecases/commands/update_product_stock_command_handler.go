package commands

import (
	"context"
)

// UpdateProductStockCommandHandler overwrites the stock of a product owned by
// the acting pharmacy.
type UpdateProductStockCommandHandler struct {
	uowFactory  UoWFactory
	invalidator CatalogInvalidator
}

// NewUpdateProductStockCommandHandler creates a handler for stock updates.
func NewUpdateProductStockCommandHandler(
	uowFactory UoWFactory,
	invalidator CatalogInvalidator,
) *UpdateProductStockCommandHandler {
	return &UpdateProductStockCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle returns a ForbiddenError when the product belongs to another pharmacy.
func (h *UpdateProductStockCommandHandler) Handle(ctx context.Context, cmd UpdateProductStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	product, err := ownedProduct(ctx, productRepo, cmd.Actor(), cmd.ProductID(), "update stock")
	if err != nil {
		return err
	}

	if err = product.SetStock(cmd.Stock()); err != nil {
		return err
	}

	if err = productRepo.Update(ctx, product); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(ctx, product.PharmacyID())
	return nil
}

package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/pharmacy"
)

// AddProductCommandHandler adds a product to a pharmacy catalog and drops the
// cached catalog of that pharmacy once the product is committed.
type AddProductCommandHandler struct {
	uowFactory  UoWFactory
	invalidator CatalogInvalidator
}

// NewAddProductCommandHandler creates a handler for catalog additions.
func NewAddProductCommandHandler(uowFactory UoWFactory, invalidator CatalogInvalidator) *AddProductCommandHandler {
	return &AddProductCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle returns ErrObjectNotFound when the pharmacy does not exist.
func (h *AddProductCommandHandler) Handle(ctx context.Context, cmd AddProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	product, err := pharmacy.NewProduct(cmd.ProductID(), cmd.PharmacyID(), cmd.Details(), cmd.Stock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.PharmacyRepository().Get(ctx, cmd.PharmacyID()); err != nil {
		return err
	}

	if err = uow.ProductRepository().Add(ctx, product); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(ctx, cmd.PharmacyID())
	return nil
}

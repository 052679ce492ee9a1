package commands

import (
	"context"
	"errors"

	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
)

// SaveInsuranceDiscountCommandHandler keeps at most one discount per (product,
// plan): saving again replaces the amounts of the existing record.
type SaveInsuranceDiscountCommandHandler struct {
	uowFactory  UoWFactory
	invalidator CatalogInvalidator
}

// NewSaveInsuranceDiscountCommandHandler creates a handler for discount upserts.
func NewSaveInsuranceDiscountCommandHandler(
	uowFactory UoWFactory,
	invalidator CatalogInvalidator,
) *SaveInsuranceDiscountCommandHandler {
	return &SaveInsuranceDiscountCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle checks the product belongs to the acting pharmacy and the plan exists,
// then saves the discount and drops the pharmacy's cached catalog.
func (h *SaveInsuranceDiscountCommandHandler) Handle(
	ctx context.Context,
	cmd SaveInsuranceDiscountCommand,
) (*insurance.Discount, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	product, err := ownedProduct(ctx, uow.ProductRepository(), cmd.Actor(), cmd.ProductID(), "save discount")
	if err != nil {
		return nil, err
	}

	insuranceRepo := uow.InsuranceRepository()
	if _, err = insuranceRepo.GetPlan(ctx, cmd.PlanID()); err != nil {
		return nil, requireFound("plan_id", err)
	}

	discount, err := insurance.NewDiscount(
		kernel.NewUUID(), cmd.ProductID(), cmd.PlanID(), cmd.Percentage(), cmd.FlatAmount(), cmd.IsActive(),
	)
	if err != nil {
		return nil, err
	}

	existing, err := insuranceRepo.FindDiscount(ctx, cmd.ProductID(), cmd.PlanID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return nil, err
	default:
		if err = existing.Replace(discount); err != nil {
			return nil, err
		}
		discount = existing
	}

	if err = insuranceRepo.SaveDiscount(ctx, discount); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, product.PharmacyID())
	return discount, nil
}

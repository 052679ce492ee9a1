package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/core/ports"
	"farmadelivery/internal/pkg/errs"
)

// ownedProduct loads a product the actor's pharmacy sells.
func ownedProduct(
	ctx context.Context,
	repo ports.ProductRepository,
	actor kernel.Actor,
	productID kernel.UUID,
	action string,
) (*pharmacy.Product, error) {
	product, err := repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !actor.Is(kernel.RolePharmacy, product.PharmacyID()) {
		return nil, errs.NewForbiddenError(action, "product belongs to another pharmacy")
	}
	return product, nil
}

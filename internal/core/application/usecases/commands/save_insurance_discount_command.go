package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSaveInsuranceDiscountCommandIsNotConstructed = errors.New(
	"SaveInsuranceDiscountCommand must be created via NewSaveInsuranceDiscountCommand constructor",
)

// SaveInsuranceDiscountCommand creates or replaces the discount a plan gets on
// a product. Exactly one of Percentage and FlatAmount must be set.
type SaveInsuranceDiscountCommand struct {
	actor      kernel.Actor
	productID  kernel.UUID
	planID     kernel.UUID
	percentage *decimal.Decimal
	flatAmount *decimal.Decimal
	active     bool

	guard guard.ConstructorGuard
}

// NewSaveInsuranceDiscountCommand creates a discount upsert. Only the pharmacy
// owning the product may set its discounts.
func NewSaveInsuranceDiscountCommand(
	actor kernel.Actor,
	productID, planID kernel.UUID,
	percentage, flatAmount *decimal.Decimal,
	active bool,
) (SaveInsuranceDiscountCommand, error) {
	if err := errors.Join(
		actor.Require("save discount", kernel.RolePharmacy),
		productID.Validate(),
		planID.Validate(),
	); err != nil {
		return SaveInsuranceDiscountCommand{}, err
	}

	return SaveInsuranceDiscountCommand{
		actor:      actor,
		productID:  productID,
		planID:     planID,
		percentage: percentage,
		flatAmount: flatAmount,
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveInsuranceDiscountCommand) Validate() error {
	return c.guard.Validate(ErrSaveInsuranceDiscountCommandIsNotConstructed)
}

func (c SaveInsuranceDiscountCommand) Actor() kernel.Actor          { return c.actor }
func (c SaveInsuranceDiscountCommand) ProductID() kernel.UUID       { return c.productID }
func (c SaveInsuranceDiscountCommand) PlanID() kernel.UUID          { return c.planID }
func (c SaveInsuranceDiscountCommand) Percentage() *decimal.Decimal { return c.percentage }
func (c SaveInsuranceDiscountCommand) FlatAmount() *decimal.Decimal { return c.flatAmount }
func (c SaveInsuranceDiscountCommand) IsActive() bool               { return c.active }

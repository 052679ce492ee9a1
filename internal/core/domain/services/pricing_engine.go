package services

import (
	"errors"
	"fmt"

	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// pricePlaces is the number of decimal places of every computed amount.
const pricePlaces = 2

var hundred = decimal.NewFromInt(100)

// Quote is the price of one unit of a product for a given customer.
type Quote struct {
	Base     decimal.Decimal
	Discount decimal.Decimal
	Final    decimal.Decimal
}

// PricingEngine computes prices after insurance discounts.
type PricingEngine struct{}

// NewPricingEngine creates a pricing engine. It holds no state.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Quote prices one unit of a product for a customer on planID (nil when the
// customer has no insurance). discount is the record stored for the product
// and plan, or nil.
//
// A discount only applies when it is active and belongs to planID. It is
// capped at the base price, so the final price is never negative. A record
// with both a percentage and a flat amount (or neither) is refused with
// insurance.ErrDiscountIsAmbiguous instead of guessing which one was meant,
// and so is a percentage outside (0, 100] or a flat amount that is not
// positive.
func (PricingEngine) Quote(base decimal.Decimal, planID *kernel.UUID, discount *insurance.Discount) (Quote, error) {
	if base.IsNegative() {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("base price", fmt.Errorf("%s is negative", base))
	}

	base = base.Round(pricePlaces)
	q := Quote{Base: base, Discount: decimal.Zero, Final: base}

	if discount == nil || !discount.AppliesTo(planID) {
		return q, nil
	}
	if err := errors.Join(discount.CheckExclusive(), discount.CheckAmounts()); err != nil {
		return Quote{}, err
	}

	var amount decimal.Decimal
	if pct := discount.Percentage(); pct != nil {
		amount = base.Mul(*pct).Div(hundred)
	} else {
		amount = *discount.FlatAmount()
	}

	amount = decimal.Min(amount.Round(pricePlaces), base)
	q.Discount = amount
	q.Final = base.Sub(amount)
	return q, nil
}

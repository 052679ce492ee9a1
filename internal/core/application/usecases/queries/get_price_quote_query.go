package queries

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPriceQuoteQueryIsNotConstructed = errors.New(
	"GetPriceQuoteQuery must be created via NewGetPriceQuoteQuery constructor",
)

// GetPriceQuoteQuery prices one unit of a product for the calling customer,
// applying the discount of the customer's insurance plan.
type GetPriceQuoteQuery struct {
	actor     kernel.Actor
	productID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetPriceQuoteQuery creates a quote for a customer actor.
func NewGetPriceQuoteQuery(actor kernel.Actor, productID kernel.UUID) (GetPriceQuoteQuery, error) {
	if err := errors.Join(
		actor.Require("quote price", kernel.RoleCustomer),
		productID.Validate(),
	); err != nil {
		return GetPriceQuoteQuery{}, err
	}
	return GetPriceQuoteQuery{actor: actor, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPriceQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetPriceQuoteQueryIsNotConstructed)
}

// GetPriceQuoteQueryResponse carries the unit price breakdown. PlanID is nil
// for a customer without insurance, in which case Discount is zero.
type GetPriceQuoteQueryResponse struct {
	ProductID kernel.UUID
	PlanID    *kernel.UUID
	Base      decimal.Decimal
	Discount  decimal.Decimal
	Final     decimal.Decimal
}

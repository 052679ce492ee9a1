package queries

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists the orders a courier could accept: ready or
// en route, without a courier, not rejected by this courier and within the
// proximity radius of the courier's position.
type GetAvailableOrdersQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates the listing for a courier actor.
func NewGetAvailableOrdersQuery(actor kernel.Actor) (GetAvailableOrdersQuery, error) {
	if err := actor.Require("list available orders", kernel.RoleCourier); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	return GetAvailableOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableOrdersQueryIsNotConstructed if validation fails.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

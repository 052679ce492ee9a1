package queries

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrGetCourierActiveOrdersQueryIsNotConstructed = errors.New(
	"GetCourierActiveOrdersQuery must be created via NewGetCourierActiveOrdersQuery constructor",
)

// GetCourierActiveOrdersQuery lists the orders the calling courier is
// delivering right now.
type GetCourierActiveOrdersQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

// NewGetCourierActiveOrdersQuery creates the listing for a courier actor.
func NewGetCourierActiveOrdersQuery(actor kernel.Actor) (GetCourierActiveOrdersQuery, error) {
	if err := actor.Require("list active orders", kernel.RoleCourier); err != nil {
		return GetCourierActiveOrdersQuery{}, err
	}
	return GetCourierActiveOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierActiveOrdersQueryIsNotConstructed)
}

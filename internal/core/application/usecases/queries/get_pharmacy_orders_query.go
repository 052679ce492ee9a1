package queries

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/guard"
)

var ErrGetPharmacyOrdersQueryIsNotConstructed = errors.New(
	"GetPharmacyOrdersQuery must be created via NewGetPharmacyOrdersQuery constructor",
)

// GetPharmacyOrdersQuery lists the orders placed with the calling pharmacy.
// Without a status filter only uncompleted orders are listed, so the
// pharmacy sees its work queue.
//
//	query, err := NewGetPharmacyOrdersQuery(actor, nil)
//	orders, err := handler.Handle(ctx, query)
type GetPharmacyOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewGetPharmacyOrdersQuery creates the order listing for a pharmacy actor.
// A nil status lists orders in every status.
func NewGetPharmacyOrdersQuery(actor kernel.Actor, status *order.Status) (GetPharmacyOrdersQuery, error) {
	if err := actor.Require("list pharmacy orders", kernel.RolePharmacy); err != nil {
		return GetPharmacyOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetPharmacyOrdersQuery{}, err
		}
		s := *status
		status = &s
	}

	return GetPharmacyOrdersQuery{
		actor:  actor,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPharmacyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPharmacyOrdersQueryIsNotConstructed)
}

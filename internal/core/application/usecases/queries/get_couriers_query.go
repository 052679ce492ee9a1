package queries

import (
	"errors"
	"time"

	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery lists every courier with its position and availability.
// It is an admin view.
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates the courier listing. Only administrators may run it.
func NewGetCouriersQuery(actor kernel.Actor) (GetCouriersQuery, error) {
	if err := actor.Require("list couriers", kernel.RoleAdmin); err != nil {
		return GetCouriersQuery{}, err
	}
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCouriersQueryIsNotConstructed if validation fails.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// GetCouriersQueryResponse is the read model of a courier. Location and
// LocationUpdatedAt are nil until the courier first reports a position.
type GetCouriersQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Vehicle           courier.Vehicle
	Active            bool
	Location          *kernel.Coordinates
	LocationUpdatedAt *time.Time
	Available         bool
}

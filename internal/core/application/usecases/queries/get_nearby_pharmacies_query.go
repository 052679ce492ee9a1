package queries

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/pkg/guard"
)

var ErrGetNearbyPharmaciesQueryIsNotConstructed = errors.New(
	"GetNearbyPharmaciesQuery must be created via NewGetNearbyPharmaciesQuery constructor",
)

// GetNearbyPharmaciesQuery lists the active pharmacies around the address of
// the calling customer.
//
//	query, err := NewGetNearbyPharmaciesQuery(actor, nil)
//	pharmacies, err := handler.Handle(ctx, query)
//	for _, p := range pharmacies {
//	    fmt.Printf("%s at %.2f km\n", p.Name, *p.DistanceKm)
//	}
type GetNearbyPharmaciesQuery struct {
	actor    kernel.Actor
	radiusKm *float64
	guard    guard.ConstructorGuard
}

// NewGetNearbyPharmaciesQuery builds the query. radiusKm overrides the
// configured radius when set and must be positive.
func NewGetNearbyPharmaciesQuery(actor kernel.Actor, radiusKm *float64) (GetNearbyPharmaciesQuery, error) {
	if err := actor.Require("list nearby pharmacies", kernel.RoleCustomer); err != nil {
		return GetNearbyPharmaciesQuery{}, err
	}
	if radiusKm != nil {
		if _, err := services.NewProximityMatcher(*radiusKm); err != nil {
			return GetNearbyPharmaciesQuery{}, err
		}
		r := *radiusKm
		radiusKm = &r
	}

	return GetNearbyPharmaciesQuery{
		actor:    actor,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyPharmaciesQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyPharmaciesQueryIsNotConstructed)
}

// GetNearbyPharmaciesQueryResponse is a pharmacy with its distance to the
// customer. DistanceKm is nil when the customer address has no coordinates,
// in which case every active pharmacy is listed.
type GetNearbyPharmaciesQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Address             kernel.Address
	AcceptsCustomerPlan bool
	DistanceKm          *float64
}

// Coordinates returns the pharmacy position, or nil when it was never geocoded.
func (r GetNearbyPharmaciesQueryResponse) Coordinates() *kernel.Coordinates {
	return r.Address.Coordinates()
}

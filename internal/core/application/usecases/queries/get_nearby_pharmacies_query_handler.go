package queries

import (
	"context"
	"database/sql"

	"farmadelivery/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNearbyPharmaciesQueryHandler reads pharmacies around a customer and flags
// the ones accepting the customer's insurance plan.
type GetNearbyPharmaciesQueryHandler struct {
	db      *gorm.DB
	matcher services.ProximityMatcher
}

// NewGetNearbyPharmaciesQueryHandler creates a handler for the pharmacy search.
func NewGetNearbyPharmaciesQueryHandler(db *gorm.DB, matcher services.ProximityMatcher) GetNearbyPharmaciesQueryHandler {
	return GetNearbyPharmaciesQueryHandler{db: db, matcher: matcher}
}

// Handle returns the active pharmacies within the radius, closest first.
// Pharmacies that were never geocoded are left out. A customer whose own
// address has no coordinates gets every active pharmacy ordered by name.
func (h GetNearbyPharmaciesQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyPharmaciesQuery,
) ([]GetNearbyPharmaciesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customerID := query.actor.ID()
	var (
		lat, lon sql.NullFloat64
		planID   uuid.NullUUID
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT address_latitude, address_longitude, insurance_plan_id
		FROM customers
		WHERE id = ?
	`, customerID.Bytes()).Row().Scan(&lat, &lon, &planID)
	if err != nil {
		return nil, notFound("customer", customerID, err)
	}
	origin, err := toCoordinates(lat, lon)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			`+addressSelect("p.address_")+`,
			EXISTS (
				SELECT 1 FROM pharmacy_insurance_plans pp
				WHERE pp.pharmacy_id = p.id AND pp.plan_id = ?
			)
		FROM pharmacies p
		WHERE p.active
		ORDER BY p.name, p.id
	`, planID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pharmacies := make([]GetNearbyPharmaciesQueryResponse, 0)
	for rows.Next() {
		var (
			pharmacy GetNearbyPharmaciesQueryResponse
			id       uuid.UUID
			address  addressColumns
		)

		targets := append([]any{&id, &pharmacy.Name}, address.targets()...)
		targets = append(targets, &pharmacy.AcceptsCustomerPlan)
		if err = rows.Scan(targets...); err != nil {
			return nil, err
		}

		if pharmacy.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if pharmacy.Address, err = address.toDomain(); err != nil {
			return nil, err
		}
		pharmacies = append(pharmacies, pharmacy)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if origin == nil {
		return pharmacies, nil
	}

	radius := h.matcher.RadiusKm()
	if query.radiusKm != nil {
		radius = *query.radiusKm
	}

	matches := services.Nearby(origin, pharmacies, radius)
	nearby := make([]GetNearbyPharmaciesQueryResponse, 0, len(matches))
	for _, m := range matches {
		pharmacy := m.Candidate
		distance := m.DistanceKm
		pharmacy.DistanceKm = &distance
		nearby = append(nearby, pharmacy)
	}
	return nearby, nil
}

package queries

import (
	"context"
	"database/sql"
	"time"

	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCouriersQueryHandler lists couriers with their computed availability.
type GetCouriersQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

// NewGetCouriersQueryHandler creates a handler for the courier listing.
// Requires a GORM database connection and the clock availability is judged
// against.
func NewGetCouriersQueryHandler(db *gorm.DB, clock ports.Clock) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db, clock: clock}
}

// Handle returns the couriers ordered by name. A courier is available when it
// is active and courier.Courier.IsAvailable holds at the handler clock's time.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			vehicle,
			active,
			latitude,
			longitude,
			location_updated_at
		FROM couriers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.clock.Now()
	couriers := make([]GetCouriersQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			name      string
			vehicle   string
			active    bool
			lat, lon  sql.NullFloat64
			updatedAt sql.NullTime
		)

		if err = rows.Scan(&id, &name, &vehicle, &active, &lat, &lon, &updatedAt); err != nil {
			return nil, err
		}

		courierID, err := toUUID(id)
		if err != nil {
			return nil, err
		}
		kind, err := courier.ParseVehicle(vehicle)
		if err != nil {
			return nil, err
		}
		location, err := toCoordinates(lat, lon)
		if err != nil {
			return nil, err
		}
		var updated *time.Time
		if updatedAt.Valid {
			updated = &updatedAt.Time
		}

		restored, err := courier.RestoreCourier(courierID, name, kind, active, location, updated, nil)
		if err != nil {
			return nil, err
		}

		c := GetCouriersQueryResponse{
			ID:                restored.ID(),
			Name:              restored.Name(),
			Vehicle:           restored.Vehicle(),
			Active:            restored.IsActive(),
			Location:          restored.Location(),
			LocationUpdatedAt: restored.LocationUpdatedAt(),
			Available:         restored.IsActive() && restored.IsAvailable(now),
		}
		couriers = append(couriers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

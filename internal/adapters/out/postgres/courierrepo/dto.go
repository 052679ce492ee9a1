// Package courierrepo persists couriers and their last reported position.
package courierrepo

import (
	"time"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is a row of the couriers table. The live position and its
// timestamp are null until the courier app reports one; the test position is
// a fixed fallback configured at registration.
type CourierDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"size:255;not null"`
	Vehicle           string    `gorm:"size:16;not null"`
	Active            bool      `gorm:"not null;default:true"`
	Latitude          *float64
	Longitude         *float64
	LocationUpdatedAt *time.Time `gorm:"index"`
	TestLatitude      *float64
	TestLongitude     *float64
}

// TableName maps courier rows to the "couriers" table.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	lat, lon := shared.CoordinatesFromDomain(c.Location())
	testLat, testLon := shared.CoordinatesFromDomain(c.TestLocation())

	return CourierDTO{
		ID:                c.ID().Bytes(),
		Name:              c.Name(),
		Vehicle:           string(c.Vehicle()),
		Active:            c.IsActive(),
		Latitude:          lat,
		Longitude:         lon,
		LocationUpdatedAt: c.LocationUpdatedAt(),
		TestLatitude:      testLat,
		TestLongitude:     testLon,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := shared.CoordinatesToDomain(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	testLocation, err := shared.CoordinatesToDomain(dto.TestLatitude, dto.TestLongitude)
	if err != nil {
		return nil, err
	}

	updatedAt := dto.LocationUpdatedAt
	if location == nil {
		updatedAt = nil
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		courier.Vehicle(dto.Vehicle),
		dto.Active,
		location,
		updatedAt,
		testLocation,
	)
}

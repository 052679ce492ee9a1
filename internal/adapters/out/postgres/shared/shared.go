// Package shared holds the column mappings and error translation used by
// every postgres repository.
package shared

import (
	"errors"
	"fmt"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressDTO is embedded into tables that store an address. Coordinates are
// nullable: an address that could not be geocoded has none.
type AddressDTO struct {
	Street     string `gorm:"size:255;not null"`
	Number     string `gorm:"size:32"`
	City       string `gorm:"size:128;not null"`
	Province   string `gorm:"size:128"`
	PostalCode string `gorm:"size:16"`
	Country    string `gorm:"size:64"`
	Latitude   *float64
	Longitude  *float64
}

// AddressFromDomain flattens an address into its embedded columns.
func AddressFromDomain(a kernel.Address) AddressDTO {
	lat, lon := CoordinatesFromDomain(a.Coordinates())
	return AddressDTO{
		Street:     a.Street(),
		Number:     a.Number(),
		City:       a.City(),
		Province:   a.Province(),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
		Latitude:   lat,
		Longitude:  lon,
	}
}

// ToDomain rebuilds the address. The coordinates are set only when both
// columns are.
func (d AddressDTO) ToDomain() (kernel.Address, error) {
	coordinates, err := CoordinatesToDomain(d.Latitude, d.Longitude)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(d.Street, d.Number, d.City, d.Province, d.PostalCode, d.Country, coordinates)
}

// CoordinatesFromDomain splits optional coordinates into nullable columns.
func CoordinatesFromDomain(c *kernel.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lon := c.Lat(), c.Lon()
	return &lat, &lon
}

// CoordinatesToDomain returns nil unless both columns are set.
func CoordinatesToDomain(lat, lon *float64) (*kernel.Coordinates, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	return kernel.NewCoordinatesPtr(*lat, *lon)
}

// UUIDToDomain converts a column value to a kernel.UUID.
func UUIDToDomain(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// OptionalUUIDToDomain converts a nullable column.
func OptionalUUIDToDomain(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := UUIDToDomain(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

// OptionalUUIDFromDomain returns nil for a nil id.
func OptionalUUIDFromDomain(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// TranslateWriteError reports unique constraint violations as conflicts. The
// connection must be opened with gorm.Config{TranslateError: true}.
func TranslateWriteError(subject string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause(subject, "already exists", err)
	}
	return err
}

// TranslateReadError maps a missing row to ObjectNotFound.
func TranslateReadError(paramName string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return err
}

// StaleVersion is returned when a versioned update matched no row although
// the row exists: somebody else committed a change first.
func StaleVersion(subject string, version int64) error {
	return errs.NewConflictErrorWithCause(subject, "was modified concurrently",
		errs.NewVersionIsInvalidError("version", fmt.Errorf("expected version %d", version)))
}

// CheckVersionedUpdate turns the outcome of an UPDATE ... WHERE id AND version
// into a typed error: NotFound when the row is gone, Conflict when it exists
// with another version.
func CheckVersionedUpdate(db *gorm.DB, result *gorm.DB, model any, paramName string, id kernel.UUID, version int64) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(model).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(paramName, id.String())
	}
	return StaleVersion(paramName+" "+id.String(), version)
}

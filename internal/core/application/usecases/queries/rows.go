// Package queries contains the read side: handlers that answer questions
// with plain SQL over the tables written by the postgres repositories,
// without loading aggregates.
package queries

import (
	"database/sql"
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

func toUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toOptionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	converted, err := toUUID(id.UUID)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func toNullUUID(id *kernel.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: id.Bytes(), Valid: true}
}

// toCoordinates returns nil unless both columns hold a value.
func toCoordinates(lat, lon sql.NullFloat64) (*kernel.Coordinates, error) {
	if !lat.Valid || !lon.Valid {
		return nil, nil
	}
	return kernel.NewCoordinatesPtr(lat.Float64, lon.Float64)
}

// addressColumns mirrors an embedded address (street, number, city,
// province, postal_code, country, latitude, longitude).
type addressColumns struct {
	street, number, city, province, postalCode, country string
	lat, lon                                            sql.NullFloat64
}

func (a *addressColumns) targets() []any {
	return []any{&a.street, &a.number, &a.city, &a.province, &a.postalCode, &a.country, &a.lat, &a.lon}
}

func (a *addressColumns) toDomain() (kernel.Address, error) {
	coordinates, err := toCoordinates(a.lat, a.lon)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(a.street, a.number, a.city, a.province, a.postalCode, a.country, coordinates)
}

// addressSelect lists the columns of an address embedded with prefix.
func addressSelect(prefix string) string {
	return prefix + "street, " + prefix + "number, " + prefix + "city, " + prefix + "province, " +
		prefix + "postal_code, " + prefix + "country, " + prefix + "latitude, " + prefix + "longitude"
}

// notFound maps sql.ErrNoRows to an ObjectNotFoundError.
func notFound(param string, id kernel.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewObjectNotFoundError(param, id.String())
	}
	return err
}

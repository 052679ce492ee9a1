package shared_test

import (
	"errors"
	"testing"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddressDTO_RoundTrip(t *testing.T) {
	coordinates, err := kernel.NewCoordinatesPtr(-34.6037, -58.3816)
	require.NoError(t, err)
	address, err := kernel.NewAddress("Av. 9 de Julio", "100", "CABA", "Buenos Aires", "C1000", "", coordinates)
	require.NoError(t, err)

	restored, err := shared.AddressFromDomain(address).ToDomain()
	require.NoError(t, err)

	assert.Equal(t, address.Query(), restored.Query())
	require.NotNil(t, restored.Coordinates())
	assert.InDelta(t, -58.3816, restored.Coordinates().Lon(), 1e-9)
}

func TestAddressDTO_WithoutCoordinates(t *testing.T) {
	address, err := kernel.NewAddress("Calle Falsa", "123", "Rosario", "", "", "", nil)
	require.NoError(t, err)

	dto := shared.AddressFromDomain(address)
	assert.Nil(t, dto.Latitude)
	assert.Nil(t, dto.Longitude)

	restored, err := dto.ToDomain()
	require.NoError(t, err)
	assert.False(t, restored.HasCoordinates())
}

func TestCoordinatesToDomain_OutOfRange(t *testing.T) {
	lat, lon := 120.0, 0.0
	_, err := shared.CoordinatesToDomain(&lat, &lon)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestTranslateErrors(t *testing.T) {
	err := shared.TranslateWriteError("pharmacy", gorm.ErrDuplicatedKey)
	require.ErrorIs(t, err, errs.ErrConflict)

	other := errors.New("connection refused")
	assert.Equal(t, other, shared.TranslateWriteError("pharmacy", other))

	err = shared.TranslateReadError("order", "o-1", gorm.ErrRecordNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestStaleVersion(t *testing.T) {
	err := shared.StaleVersion("order 1", 4)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Contains(t, err.Error(), "expected version 4")
}

package pharmacy_test

import (
	"testing"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, stock int) *pharmacy.Product {
	t.Helper()

	p, err := pharmacy.NewProduct(kernel.NewUUID(), kernel.NewUUID(), pharmacy.ProductDetails{
		Name:      "Ibuprofeno 400mg",
		Category:  "Analgésicos",
		BasePrice: decimal.NewFromInt(1000),
	}, stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("should create active product at version zero", func(t *testing.T) {
		p := newProduct(t, 5)

		assert.True(t, p.IsActive())
		assert.Equal(t, int64(0), p.Version())
		assert.Equal(t, 5, p.Stock())
		assert.True(t, p.BasePrice().Equal(decimal.NewFromInt(1000)))
	})

	t.Run("should reject negative stock and price", func(t *testing.T) {
		_, err := pharmacy.NewProduct(kernel.NewUUID(), kernel.NewUUID(), pharmacy.ProductDetails{
			Name:      "Amoxicilina",
			BasePrice: decimal.NewFromInt(-1),
		}, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock")
		assert.Contains(t, err.Error(), "base price")
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("should decrement stock", func(t *testing.T) {
		p := newProduct(t, 3)

		require.NoError(t, p.Reserve(2))
		assert.Equal(t, 1, p.Stock())
	})

	t.Run("should allow taking the last unit", func(t *testing.T) {
		p := newProduct(t, 1)

		require.NoError(t, p.Reserve(1))
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("should conflict when stock is insufficient", func(t *testing.T) {
		p := newProduct(t, 1)

		err := p.Reserve(2)

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "insufficient stock")
		assert.Equal(t, 1, p.Stock())
	})

	t.Run("should conflict for inactive product", func(t *testing.T) {
		p := newProduct(t, 10)
		p.Deactivate()

		assert.ErrorIs(t, p.Reserve(1), errs.ErrConflict)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		p := newProduct(t, 10)

		assert.ErrorIs(t, p.Reserve(0), errs.ErrValueIsInvalid)
	})
}

func TestProduct_ReleaseRestoresStock(t *testing.T) {
	p := newProduct(t, 4)
	before := p.Stock()

	require.NoError(t, p.Reserve(3))
	require.NoError(t, p.Release(3))

	assert.Equal(t, before, p.Stock())
}

package order_test

import (
	"testing"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("should compute gross, discount and subtotal", func(t *testing.T) {
		l, err := order.NewLine(kernel.NewUUID(), "Ibuprofeno", 3, decimal.NewFromInt(1000), decimal.NewFromInt(400))

		require.NoError(t, err)
		assert.Equal(t, "3000", l.Gross().String())
		assert.Equal(t, "1200", l.DiscountTotal().String())
		assert.Equal(t, "1800", l.Subtotal().String())
	})

	t.Run("should reject discount above unit price", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), "Ibuprofeno", 1, decimal.NewFromInt(100), decimal.NewFromInt(101))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), "Ibuprofeno", 0, decimal.NewFromInt(100), decimal.Zero)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

package order

import (
	"errors"
	"fmt"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one product of an order, priced at checkout time.
type Line struct {
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   decimal.Decimal
	discount    decimal.Decimal
}

// NewLine creates a line. discount is the per-unit insurance discount and
// cannot exceed unitPrice.
func NewLine(productID kernel.UUID, productName string, quantity int, unitPrice, discount decimal.Decimal) (Line, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%s is negative", unitPrice)))
	}
	if discount.IsNegative() || discount.GreaterThan(unitPrice) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("discount", discount.String(), "0", unitPrice.String()))
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return Line{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		discount:    discount,
	}, nil
}

func (l Line) ProductID() kernel.UUID     { return l.productID }
func (l Line) ProductName() string        { return l.productName }
func (l Line) Quantity() int              { return l.quantity }
func (l Line) UnitPrice() decimal.Decimal { return l.unitPrice }

// Discount is the per-unit discount applied to the line.
func (l Line) Discount() decimal.Decimal { return l.discount }

// Gross is unit price times quantity, before discounts.
func (l Line) Gross() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// DiscountTotal is the discount over the whole quantity.
func (l Line) DiscountTotal() decimal.Decimal {
	return l.discount.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Subtotal is what the customer pays for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Gross().Sub(l.DiscountTotal())
}

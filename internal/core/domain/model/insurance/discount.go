package insurance

import (
	"errors"
	"fmt"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrDiscountIsNotConstructed = errs.NewValueIsRequiredError("discount must be created via NewDiscount")

	// ErrDiscountIsAmbiguous is returned for a record that sets both a percentage
	// and a flat amount, or neither of them.
	ErrDiscountIsAmbiguous = errs.NewValueIsInvalidErrorWithCause(
		"discount", errors.New("exactly one of percentage or flat amount must be set"))

	maxPercentage = decimal.NewFromInt(100)
)

// Discount is the price reduction a plan grants for one product.
type Discount struct {
	id         kernel.UUID
	productID  kernel.UUID
	planID     kernel.UUID
	percentage *decimal.Decimal
	flatAmount *decimal.Decimal
	active     bool
	guard      guard.ConstructorGuard
}

// NewDiscount creates a discount with either a percentage in (0, 100] or a
// positive flat amount.
func NewDiscount(
	id, productID, planID kernel.UUID,
	percentage, flatAmount *decimal.Decimal,
	active bool,
) (*Discount, error) {
	d := &Discount{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setIDs(id, productID, planID),
		d.setAmounts(percentage, flatAmount),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDiscount rebuilds a persisted discount. Amounts are not checked here:
// rows written by other tools may be ambiguous or out of range, and the
// pricing engine refuses to apply those instead of failing the whole load.
func RestoreDiscount(
	id, productID, planID kernel.UUID,
	percentage, flatAmount *decimal.Decimal,
	active bool,
) (*Discount, error) {
	d := &Discount{
		percentage: copyDecimal(percentage),
		flatAmount: copyDecimal(flatAmount),
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}

	if err := d.setIDs(id, productID, planID); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the discount was created through a constructor.
func (d *Discount) Validate() error {
	if d == nil {
		return ErrDiscountIsNotConstructed
	}
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

func (d *Discount) ID() kernel.UUID        { return d.id }
func (d *Discount) ProductID() kernel.UUID { return d.productID }
func (d *Discount) PlanID() kernel.UUID    { return d.planID }
func (d *Discount) IsActive() bool         { return d.active }

// Percentage returns the percentage, or nil for a flat discount.
func (d *Discount) Percentage() *decimal.Decimal { return copyDecimal(d.percentage) }

// FlatAmount returns the flat amount, or nil for a percentage discount.
func (d *Discount) FlatAmount() *decimal.Decimal { return copyDecimal(d.flatAmount) }

// CheckExclusive returns ErrDiscountIsAmbiguous unless exactly one of
// percentage or flat amount is set.
func (d *Discount) CheckExclusive() error {
	if (d.percentage == nil) == (d.flatAmount == nil) {
		return ErrDiscountIsAmbiguous
	}
	return nil
}

// CheckAmounts returns a ValueIsOutOfRange error for a percentage outside
// (0, 100] and a ValueIsInvalid error for a flat amount that is not positive.
func (d *Discount) CheckAmounts() error {
	return checkAmounts(d.percentage, d.flatAmount)
}

// AppliesTo reports whether the discount is active and belongs to planID.
// A customer without a plan (nil) never gets a discount.
func (d *Discount) AppliesTo(planID *kernel.UUID) bool {
	return planID != nil && d.active && d.planID.IsEqual(*planID)
}

// Replace overwrites amounts and state with those of other. It keeps the
// identity, so saving a discount twice for the same pair updates one record.
func (d *Discount) Replace(other *Discount) error {
	if err := errors.Join(d.Validate(), other.Validate()); err != nil {
		return err
	}
	if !d.productID.IsEqual(other.productID) || !d.planID.IsEqual(other.planID) {
		return errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("cannot replace discount for product %s and plan %s", d.productID, d.planID))
	}

	d.percentage = copyDecimal(other.percentage)
	d.flatAmount = copyDecimal(other.flatAmount)
	d.active = other.active
	return nil
}

func (d *Discount) setIDs(id, productID, planID kernel.UUID) error {
	if err := errors.Join(id.Validate(), productID.Validate(), planID.Validate()); err != nil {
		return err
	}

	d.id = id
	d.productID = productID
	d.planID = planID
	return nil
}

func (d *Discount) setAmounts(percentage, flatAmount *decimal.Decimal) error {
	if (percentage == nil) == (flatAmount == nil) {
		return ErrDiscountIsAmbiguous
	}

	if err := checkAmounts(percentage, flatAmount); err != nil {
		return err
	}

	d.percentage = copyDecimal(percentage)
	d.flatAmount = copyDecimal(flatAmount)
	return nil
}

func checkAmounts(percentage, flatAmount *decimal.Decimal) error {
	if percentage != nil && (!percentage.IsPositive() || percentage.GreaterThan(maxPercentage)) {
		return errs.NewValueIsOutOfRangeError("percentage", percentage.String(), "0 (exclusive)", maxPercentage.String())
	}
	if flatAmount != nil && !flatAmount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("flat amount",
			fmt.Errorf("%s is not greater than 0", flatAmount.String()))
	}
	return nil
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

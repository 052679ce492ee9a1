package pharmacy

import (
	"errors"
	"fmt"
	"strings"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errs.NewValueIsRequiredError("product must be created via NewProduct")

// Product is an item of a pharmacy catalog.
type Product struct {
	id                   kernel.UUID
	pharmacyID           kernel.UUID
	name                 string
	description          string
	category             string
	basePrice            decimal.Decimal
	stock                int
	prescriptionRequired bool
	active               bool
	version              int64
	guard                guard.ConstructorGuard
}

// ProductDetails groups the descriptive attributes of a product.
type ProductDetails struct {
	Name                 string
	Description          string
	Category             string
	BasePrice            decimal.Decimal
	PrescriptionRequired bool
}

// NewProduct adds an active product at version 0.
func NewProduct(id, pharmacyID kernel.UUID, details ProductDetails, stock int) (*Product, error) {
	return RestoreProduct(id, pharmacyID, details, stock, true, 0)
}

// RestoreProduct rebuilds a persisted product at the version it was read with.
// The same field rules as NewProduct apply.
func RestoreProduct(
	id, pharmacyID kernel.UUID,
	details ProductDetails,
	stock int,
	active bool,
	version int64,
) (*Product, error) {
	p := &Product{
		description:          strings.TrimSpace(details.Description),
		category:             strings.TrimSpace(details.Category),
		prescriptionRequired: details.PrescriptionRequired,
		active:               active,
		version:              version,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		pharmacyID.Validate(),
		p.setName(details.Name),
		p.setBasePrice(details.BasePrice),
		p.SetStock(stock),
	); err != nil {
		return nil, err
	}

	p.id = id
	p.pharmacyID = pharmacyID
	return p, nil
}

// Validate ensures the product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID            { return p.id }
func (p *Product) PharmacyID() kernel.UUID    { return p.pharmacyID }
func (p *Product) Name() string               { return p.name }
func (p *Product) Description() string        { return p.description }
func (p *Product) Category() string           { return p.category }
func (p *Product) BasePrice() decimal.Decimal { return p.basePrice }
func (p *Product) Stock() int                 { return p.stock }
func (p *Product) PrescriptionRequired() bool { return p.prescriptionRequired }
func (p *Product) IsActive() bool             { return p.active }

// Version is the optimistic lock version the product was loaded with.
func (p *Product) Version() int64 { return p.version }

// Reserve takes quantity units out of stock for an order.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if !p.active {
		return errs.NewConflictError("product "+p.id.String(), "product is not available")
	}
	if p.stock < quantity {
		return errs.NewConflictError("product "+p.id.String(),
			fmt.Sprintf("insufficient stock: %d available, %d requested", p.stock, quantity))
	}

	p.stock -= quantity
	return nil
}

// Release returns quantity units to stock, e.g. when an order is cancelled.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	p.stock += quantity
	return nil
}

// SetStock overwrites the stock count after an inventory check.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}

	p.stock = stock
	return nil
}

func (p *Product) Activate()   { p.active = true }
func (p *Product) Deactivate() { p.active = false }

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("base price", fmt.Errorf("%s is negative", price))
	}
	p.basePrice = price
	return nil
}

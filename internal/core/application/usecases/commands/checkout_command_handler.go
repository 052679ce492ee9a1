package commands

import (
	"context"
	"errors"
	"fmt"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/core/ports"
	"farmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CheckoutResult describes the order created by a checkout.
type CheckoutResult struct {
	OrderID       kernel.UUID
	Number        order.Number
	Status        order.Status
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
}

// CheckoutCommandHandler creates an order from a customer's cart.
//
// Everything is checked before anything is written and all writes share one
// transaction: products exist and belong to one active pharmacy, stock
// suffices, a prescription is attached when a product requires it and any
// insurance discount record is well formed. Stock is decremented through
// versioned updates, so two checkouts racing for the last unit cannot both
// commit.
type CheckoutCommandHandler struct {
	uowFactory  UoWFactory
	pricing     services.PricingEngine
	geocoder    ports.Geocoder
	dispatcher  EventDispatcher
	invalidator CatalogInvalidator
	clock       ports.Clock
}

// NewCheckoutCommandHandler creates a handler for checkout. The geocoder
// resolves a delivery address given without coordinates; the clock stamps the
// order and its prescription.
func NewCheckoutCommandHandler(
	uowFactory UoWFactory,
	pricing services.PricingEngine,
	geocoder ports.Geocoder,
	dispatcher EventDispatcher,
	invalidator CatalogInvalidator,
	clock ports.Clock,
) *CheckoutCommandHandler {
	return &CheckoutCommandHandler{
		uowFactory:  uowFactory,
		pricing:     pricing,
		geocoder:    geocoder,
		dispatcher:  dispatcher,
		invalidator: invalidator,
		clock:       clock,
	}
}

// Handle places the order and returns it together with the quoted totals.
// Address resolution happens before the transaction opens. Pending events are
// dispatched only after commit.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	uow := h.uowFactory.Create()

	// No transaction may stay open across the geocoder lookup.
	customer, err := uow.CustomerRepository().Get(ctx, cmd.Actor().ID())
	if err != nil {
		return CheckoutResult{}, err
	}

	address := customer.Address()
	if cmd.DeliveryAddress() != nil {
		address = *cmd.DeliveryAddress()
	}
	address = locate(ctx, h.geocoder, address)

	if err = uow.Begin(ctx); err != nil {
		return CheckoutResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	products, pharmacyID, err := h.loadProducts(ctx, productRepo, cmd.Items())
	if err != nil {
		return CheckoutResult{}, err
	}

	store, err := uow.PharmacyRepository().Get(ctx, pharmacyID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !store.IsActive() {
		return CheckoutResult{}, errs.NewConflictError("pharmacy "+pharmacyID.String(), "pharmacy is not active")
	}

	prescription, err := h.prescription(cmd, products)
	if err != nil {
		return CheckoutResult{}, err
	}

	lines := make([]order.Line, 0, len(products))
	for i, item := range cmd.Items() {
		product := products[i]

		quote, err := h.quote(ctx, uow.InsuranceRepository(), product, customer.InsurancePlanID())
		if err != nil {
			return CheckoutResult{}, err
		}

		line, err := order.NewLine(product.ID(), product.Name(), item.Quantity, quote.Base, quote.Discount)
		if err != nil {
			return CheckoutResult{}, err
		}
		lines = append(lines, line)

		if err = product.Reserve(item.Quantity); err != nil {
			return CheckoutResult{}, err
		}
	}

	now := h.clock.Now()
	number, err := order.NewNumber(now)
	if err != nil {
		return CheckoutResult{}, err
	}

	aggregate, err := order.NewOrder(order.Draft{
		ID:              cmd.OrderID(),
		Number:          number,
		CustomerID:      customer.ID(),
		PharmacyID:      pharmacyID,
		PaymentMethod:   cmd.PaymentMethod(),
		DeliveryAddress: address,
		Notes:           cmd.Notes(),
		Lines:           lines,
		Prescription:    prescription,
		CreatedAt:       now,
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	for _, product := range products {
		if err = productRepo.Update(ctx, product); err != nil {
			return CheckoutResult{}, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}

	h.invalidator.Invalidate(ctx, pharmacyID)
	h.dispatcher.Dispatch(ctx, aggregate.DomainEvents()...)

	return CheckoutResult{
		OrderID:       aggregate.ID(),
		Number:        aggregate.Number(),
		Status:        aggregate.Status(),
		Subtotal:      aggregate.Subtotal(),
		DiscountTotal: aggregate.DiscountTotal(),
		Total:         aggregate.Total(),
	}, nil
}

// loadProducts returns the products in item order and the pharmacy they
// belong to.
func (h *CheckoutCommandHandler) loadProducts(
	ctx context.Context,
	repo ports.ProductRepository,
	items []CheckoutItem,
) ([]*pharmacy.Product, kernel.UUID, error) {
	products := make([]*pharmacy.Product, 0, len(items))
	var pharmacyID kernel.UUID

	for i, item := range items {
		product, err := repo.Get(ctx, item.ProductID)
		if err != nil {
			return nil, kernel.UUID{}, err
		}

		if i == 0 {
			pharmacyID = product.PharmacyID()
		} else if !product.PharmacyID().IsEqual(pharmacyID) {
			return nil, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("items",
				errors.New("all products of an order must belong to the same pharmacy"))
		}

		products = append(products, product)
	}

	return products, pharmacyID, nil
}

func (h *CheckoutCommandHandler) prescription(cmd CheckoutCommand, products []*pharmacy.Product) (*order.Prescription, error) {
	upload := cmd.Prescription()

	for _, product := range products {
		if product.PrescriptionRequired() && upload == nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("prescription",
				fmt.Errorf("product %q requires a prescription", product.Name()))
		}
	}

	if upload == nil {
		return nil, nil
	}
	return order.NewPrescription(upload.FileRef, upload.Notes)
}

func (h *CheckoutCommandHandler) quote(
	ctx context.Context,
	repo ports.InsuranceRepository,
	product *pharmacy.Product,
	planID *kernel.UUID,
) (services.Quote, error) {
	if planID == nil {
		return h.pricing.Quote(product.BasePrice(), nil, nil)
	}

	discount, err := repo.FindDiscount(ctx, product.ID(), *planID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.pricing.Quote(product.BasePrice(), planID, nil)
	}
	if err != nil {
		return services.Quote{}, err
	}

	return h.pricing.Quote(product.BasePrice(), planID, discount)
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutItem is a product and the quantity being bought.
type CheckoutItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// PrescriptionUpload references a prescription file already stored by the
// upload service.
type PrescriptionUpload struct {
	FileRef string
	Notes   string
}

// CheckoutCommand places an order for the acting customer.
//
// DeliveryAddress is optional; when nil the customer's address is used.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	items           []CheckoutItem
	paymentMethod   order.PaymentMethod
	deliveryAddress *kernel.Address
	notes           string
	prescription    *PrescriptionUpload

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout for a customer actor.
// Requires at least one item. Repeated products are merged and a zero quantity
// counts as one.
func NewCheckoutCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	items []CheckoutItem,
	paymentMethod order.PaymentMethod,
	deliveryAddress *kernel.Address,
	notes string,
	prescription *PrescriptionUpload,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		actor:           actor,
		deliveryAddress: deliveryAddress,
		notes:           strings.TrimSpace(notes),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Require("checkout", kernel.RoleCustomer),
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPrescription(prescription),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckoutCommandIsNotConstructed if validation fails.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Actor() kernel.Actor                { return c.actor }
func (c CheckoutCommand) OrderID() kernel.UUID               { return c.orderID }
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CheckoutCommand) DeliveryAddress() *kernel.Address   { return c.deliveryAddress }
func (c CheckoutCommand) Notes() string                      { return c.notes }
func (c CheckoutCommand) Prescription() *PrescriptionUpload  { return c.prescription }

// Items returns a copy of the requested lines.
func (c CheckoutCommand) Items() []CheckoutItem {
	items := make([]CheckoutItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CheckoutCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

// setItems merges repeated products and defaults a zero quantity to one unit.
func (c *CheckoutCommand) setItems(items []CheckoutItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	merged := make([]CheckoutItem, 0, len(items))
	index := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", item.Quantity))
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}

		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	c.items = merged
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(m order.PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address *kernel.Address) error {
	if address == nil {
		return nil
	}
	return address.Validate()
}

func (c *CheckoutCommand) setPrescription(p *PrescriptionUpload) error {
	if p == nil {
		return nil
	}
	if strings.TrimSpace(p.FileRef) == "" {
		return errs.NewValueIsRequiredError("prescription file")
	}
	copied := *p
	c.prescription = &copied
	return nil
}

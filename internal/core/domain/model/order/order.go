package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultDeliveryWindow is added to the creation time to estimate delivery.
const DefaultDeliveryWindow = 2 * time.Hour

var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of a purchase from one pharmacy by one customer.
//
// Invariants:
//   - it has at least one line and no product appears twice
//   - Total == Subtotal - DiscountTotal, all computed from the lines
//   - only EnRoute and Delivered orders have a courier
//   - every status change goes through a transition method, which checks the
//     acting participant and records a StatusChangedEvent
type Order struct {
	id                  kernel.UUID
	number              Number
	customerID          kernel.UUID
	pharmacyID          kernel.UUID
	courierID           *kernel.UUID
	status              Status
	paymentMethod       PaymentMethod
	lines               []Line
	deliveryAddress     kernel.Address
	notes               string
	prescription        *Prescription
	createdAt           time.Time
	updatedAt           time.Time
	estimatedDeliveryAt time.Time
	deliveredAt         *time.Time
	version             int64

	events []StatusChangedEvent
	guard  guard.ConstructorGuard
}

// Draft carries what checkout knows about a new order.
type Draft struct {
	ID              kernel.UUID
	Number          Number
	CustomerID      kernel.UUID
	PharmacyID      kernel.UUID
	PaymentMethod   PaymentMethod
	DeliveryAddress kernel.Address
	Notes           string
	Lines           []Line
	Prescription    *Prescription
	CreatedAt       time.Time
}

// NewOrder creates a Pending order and records its creation event.
func NewOrder(d Draft) (*Order, error) {
	o := &Order{
		status:              Pending,
		notes:               strings.TrimSpace(d.Notes),
		prescription:        d.Prescription,
		createdAt:           d.CreatedAt.UTC(),
		updatedAt:           d.CreatedAt.UTC(),
		estimatedDeliveryAt: d.CreatedAt.UTC().Add(DefaultDeliveryWindow),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setIdentity(d.ID, d.Number, d.CustomerID, d.PharmacyID),
		o.setPaymentMethod(d.PaymentMethod),
		o.setDeliveryAddress(d.DeliveryAddress),
		o.setLines(d.Lines),
		requireTime("created at", d.CreatedAt),
	); err != nil {
		return nil, err
	}

	o.record(Unknown, o.createdAt)
	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID                  kernel.UUID
	Number              Number
	CustomerID          kernel.UUID
	PharmacyID          kernel.UUID
	CourierID           *kernel.UUID
	Status              Status
	PaymentMethod       PaymentMethod
	Lines               []Line
	DeliveryAddress     kernel.Address
	Notes               string
	Prescription        *Prescription
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt time.Time
	DeliveredAt         *time.Time
	Version             int64
}

// RestoreOrder rebuilds a persisted order without recording events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		notes:               s.Notes,
		prescription:        s.Prescription,
		createdAt:           s.CreatedAt.UTC(),
		updatedAt:           s.UpdatedAt.UTC(),
		estimatedDeliveryAt: s.EstimatedDeliveryAt.UTC(),
		version:             s.Version,
		guard:               guard.NewConstructorGuard(),
	}
	if s.DeliveredAt != nil {
		at := s.DeliveredAt.UTC()
		o.deliveredAt = &at
	}

	if err := errors.Join(
		o.setIdentity(s.ID, s.Number, s.CustomerID, s.PharmacyID),
		o.setPaymentMethod(s.PaymentMethod),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setLines(s.Lines),
		o.setStatus(s.Status, s.CourierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) Number() Number                  { return o.number }
func (o *Order) CustomerID() kernel.UUID         { return o.customerID }
func (o *Order) PharmacyID() kernel.UUID         { return o.pharmacyID }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) PaymentMethod() PaymentMethod    { return o.paymentMethod }
func (o *Order) DeliveryAddress() kernel.Address { return o.deliveryAddress }
func (o *Order) Notes() string                   { return o.notes }
func (o *Order) Prescription() *Prescription     { return o.prescription }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }
func (o *Order) EstimatedDeliveryAt() time.Time  { return o.estimatedDeliveryAt }

// Version is the optimistic lock version the order was loaded with.
func (o *Order) Version() int64 { return o.version }

// Courier returns the assigned courier, or nil.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// DeliveredAt returns the delivery time, or nil while the order is open.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	at := *o.deliveredAt
	return &at
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Coordinates is the delivery position, used to match orders with couriers.
func (o *Order) Coordinates() *kernel.Coordinates {
	return o.deliveryAddress.Coordinates()
}

// Subtotal is the sum of unit price times quantity over all lines.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Gross())
	}
	return total
}

// DiscountTotal is the sum of the insurance discounts over all lines.
func (o *Order) DiscountTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.DiscountTotal())
	}
	return total
}

// Total is Subtotal minus DiscountTotal.
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal().Sub(o.DiscountTotal())
}

// Prepare is the pharmacy confirming the order. An attached prescription is
// marked as validated.
func (o *Order) Prepare(actor kernel.Actor, now time.Time) error {
	if err := o.requirePharmacy(actor, "prepare order"); err != nil {
		return err
	}

	next, err := o.status.Prepare()
	if err != nil {
		return err
	}

	if o.prescription != nil {
		o.prescription.markValidated(now)
	}
	o.changeStatus(next, now)
	return nil
}

// MarkReady is the pharmacy handing the order over for pickup.
func (o *Order) MarkReady(actor kernel.Actor, now time.Time) error {
	if err := o.requirePharmacy(actor, "mark order ready"); err != nil {
		return err
	}

	next, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.changeStatus(next, now)
	return nil
}

// Cancel is the pharmacy refusing the order, e.g. for an invalid prescription.
// The caller restores the stock of every line.
func (o *Order) Cancel(actor kernel.Actor, now time.Time) error {
	if err := o.requirePharmacy(actor, "cancel order"); err != nil {
		return err
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.changeStatus(next, now)
	return nil
}

// Accept assigns the acting courier. Proximity is checked by the caller.
func (o *Order) Accept(actor kernel.Actor, now time.Time) error {
	if err := actor.Require("accept order", kernel.RoleCourier); err != nil {
		return err
	}

	next, err := o.status.Accept()
	if err != nil {
		return err
	}
	if o.courierID != nil {
		return errs.NewConflictError("order "+o.id.String(), "order is already assigned to a courier")
	}

	courierID := actor.ID()
	o.courierID = &courierID
	o.changeStatus(next, now)
	return nil
}

// Deliver completes the order. Only the assigned courier may deliver it.
func (o *Order) Deliver(actor kernel.Actor, now time.Time) error {
	if err := actor.Require("deliver order", kernel.RoleCourier); err != nil {
		return err
	}

	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(actor.ID()) {
		return errs.NewForbiddenError("deliver order", "order is assigned to another courier")
	}

	at := now.UTC()
	o.deliveredAt = &at
	o.changeStatus(next, now)
	return nil
}

// Reject records that the acting courier does not want the order. The status
// does not change and other couriers may still accept it.
func (o *Order) Reject(actor kernel.Actor, now time.Time) (Rejection, error) {
	if err := actor.Require("reject order", kernel.RoleCourier); err != nil {
		return Rejection{}, err
	}
	if o.status.IsFinal() {
		return Rejection{}, errs.NewConflictError("order status",
			fmt.Sprintf("status is %s, order can no longer be rejected", o.status))
	}
	if o.courierID != nil && o.courierID.IsEqual(actor.ID()) {
		return Rejection{}, errs.NewConflictError("order "+o.id.String(), "order is assigned to this courier")
	}

	return Rejection{orderID: o.id, courierID: actor.ID(), rejectedAt: now.UTC()}, nil
}

// CanBeViewedBy reports whether actor is the customer, the pharmacy or the
// assigned courier of the order, or an admin.
func (o *Order) CanBeViewedBy(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return actor.Validate() == nil
	case kernel.RoleCustomer:
		return actor.Is(kernel.RoleCustomer, o.customerID)
	case kernel.RolePharmacy:
		return actor.Is(kernel.RolePharmacy, o.pharmacyID)
	case kernel.RoleCourier:
		return o.courierID != nil && actor.Is(kernel.RoleCourier, *o.courierID)
	default:
		return false
	}
}

// DomainEvents returns the events recorded since the order was created or
// loaded.
func (o *Order) DomainEvents() []StatusChangedEvent {
	events := make([]StatusChangedEvent, len(o.events))
	copy(events, o.events)
	return events
}

// ClearDomainEvents drops the recorded events once they were handed to the
// dispatcher.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) requirePharmacy(actor kernel.Actor, action string) error {
	if err := actor.Require(action, kernel.RolePharmacy); err != nil {
		return err
	}
	if !actor.ID().IsEqual(o.pharmacyID) {
		return errs.NewForbiddenError(action, "order belongs to another pharmacy")
	}
	return nil
}

func (o *Order) changeStatus(next Status, now time.Time) {
	from := o.status
	o.status = next
	o.updatedAt = now.UTC()
	o.record(from, o.updatedAt)
}

func (o *Order) record(from Status, at time.Time) {
	o.events = append(o.events, StatusChangedEvent{
		OrderID:    o.id,
		Number:     o.number,
		CustomerID: o.customerID,
		PharmacyID: o.pharmacyID,
		CourierID:  o.Courier(),
		From:       from,
		To:         o.status,
		OccurredAt: at,
	})
}

func (o *Order) setIdentity(id kernel.UUID, number Number, customerID, pharmacyID kernel.UUID) error {
	if err := errors.Join(id.Validate(), number.Validate(), customerID.Validate(), pharmacyID.Validate()); err != nil {
		return err
	}

	o.id = id
	o.number = number
	o.customerID = customerID
	o.pharmacyID = pharmacyID
	return nil
}

func (o *Order) setPaymentMethod(m PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.paymentMethod = m
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if err := l.productID.Validate(); err != nil {
			return err
		}
		if _, ok := seen[l.productID]; ok {
			return errs.NewValueIsInvalidErrorWithCause("order lines",
				fmt.Errorf("product %s appears more than once", l.productID))
		}
		seen[l.productID] = struct{}{}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setStatus(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}

	o.status = status
	if courierID != nil {
		id := *courierID
		o.courierID = &id
	}
	return nil
}

func requireTime(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

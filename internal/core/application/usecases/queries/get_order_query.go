package queries

import (
	"errors"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order. Only its customer, its pharmacy, the
// assigned courier and admins may read it.
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order. Access is checked by the
// handler once the order is loaded.
func NewGetOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderLineView is one line of an order with the prices frozen at checkout.
type OrderLineView struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal
}

// PrescriptionView describes the attached prescription. ValidatedAt is set once
// the pharmacy starts preparing the order.
type PrescriptionView struct {
	FileRef     string
	Notes       string
	ValidatedAt *time.Time
}

// GetOrderQueryResponse is the full read model of an order.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	Number              string
	CustomerID          kernel.UUID
	PharmacyID          kernel.UUID
	CourierID           *kernel.UUID
	Status              order.Status
	PaymentMethod       order.PaymentMethod
	Subtotal            decimal.Decimal
	DiscountTotal       decimal.Decimal
	Total               decimal.Decimal
	DeliveryAddress     kernel.Address
	Notes               string
	Prescription        *PrescriptionView
	Lines               []OrderLineView
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt time.Time
	DeliveredAt         *time.Time
	Version             int64
}

func orderView(o *order.Order) GetOrderQueryResponse {
	view := GetOrderQueryResponse{
		ID:                  o.ID(),
		Number:              o.Number().String(),
		CustomerID:          o.CustomerID(),
		PharmacyID:          o.PharmacyID(),
		CourierID:           o.Courier(),
		Status:              o.Status(),
		PaymentMethod:       o.PaymentMethod(),
		Subtotal:            o.Subtotal(),
		DiscountTotal:       o.DiscountTotal(),
		Total:               o.Total(),
		DeliveryAddress:     o.DeliveryAddress(),
		Notes:               o.Notes(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		DeliveredAt:         o.DeliveredAt(),
		Version:             o.Version(),
	}

	if p := o.Prescription(); p != nil {
		view.Prescription = &PrescriptionView{
			FileRef:     p.FileRef(),
			Notes:       p.Notes(),
			ValidatedAt: p.ValidatedAt(),
		}
	}

	for _, l := range o.Lines() {
		view.Lines = append(view.Lines, OrderLineView{
			ProductID:   l.ProductID(),
			ProductName: l.ProductName(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice(),
			Discount:    l.Discount(),
			Subtotal:    l.Subtotal(),
		})
	}
	return view
}

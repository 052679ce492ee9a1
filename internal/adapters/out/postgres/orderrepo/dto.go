// Package orderrepo persists order aggregates with their lines, prescription
// and courier rejections.
package orderrepo

import (
	"errors"
	"time"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. Totals are stored so that listings
// do not have to aggregate the lines.
type OrderDTO struct {
	ID                      uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Number                  string            `gorm:"size:16;uniqueIndex;not null"`
	CustomerID              uuid.UUID         `gorm:"type:uuid;index;not null"`
	PharmacyID              uuid.UUID         `gorm:"type:uuid;index;not null"`
	CourierID               *uuid.UUID        `gorm:"type:uuid;index"`
	Status                  string            `gorm:"size:16;index;not null"`
	PaymentMethod           string            `gorm:"size:16;not null"`
	Subtotal                decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	DiscountTotal           decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	Total                   decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	DeliveryAddress         shared.AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Notes                   string            `gorm:"type:text"`
	PrescriptionFileRef     *string           `gorm:"size:512"`
	PrescriptionNotes       *string           `gorm:"type:text"`
	PrescriptionValidatedAt *time.Time
	CreatedAt               time.Time `gorm:"index;not null"`
	UpdatedAt               time.Time `gorm:"not null"`
	EstimatedDeliveryAt     time.Time `gorm:"not null"`
	DeliveredAt             *time.Time
	Version                 int64          `gorm:"not null;default:0"`
	Lines                   []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName maps order rows to the "orders" table.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is a row of order_lines. An order has one line per product.
type OrderLineDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Discount    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Position    int             `gorm:"not null"`
}

// TableName maps order lines to the "order_lines" table.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// RejectionDTO is a row of order_rejections; the composite key makes repeated
// rejections collapse into one row.
type RejectionDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	RejectedAt time.Time `gorm:"not null"`
}

// TableName maps rejections to the "order_rejections" table.
func (RejectionDTO) TableName() string {
	return "order_rejections"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Number:              aggregate.Number().String(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		PharmacyID:          aggregate.PharmacyID().Bytes(),
		CourierID:           shared.OptionalUUIDFromDomain(aggregate.Courier()),
		Status:              aggregate.Status().String(),
		PaymentMethod:       string(aggregate.PaymentMethod()),
		Subtotal:            aggregate.Subtotal(),
		DiscountTotal:       aggregate.DiscountTotal(),
		Total:               aggregate.Total(),
		DeliveryAddress:     shared.AddressFromDomain(aggregate.DeliveryAddress()),
		Notes:               aggregate.Notes(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
		Version:             aggregate.Version(),
	}

	if p := aggregate.Prescription(); p != nil {
		fileRef, notes := p.FileRef(), p.Notes()
		dto.PrescriptionFileRef = &fileRef
		dto.PrescriptionNotes = &notes
		dto.PrescriptionValidatedAt = p.ValidatedAt()
	}

	for i, line := range aggregate.Lines() {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			OrderID:     dto.ID,
			ProductID:   line.ProductID().Bytes(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice(),
			Discount:    line.Discount(),
			Position:    i,
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids := make([]kernel.UUID, 3)
	for i, raw := range []uuid.UUID{dto.ID, dto.CustomerID, dto.PharmacyID} {
		id, err := shared.UUIDToDomain(raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	courierID, err := shared.OptionalUUIDToDomain(dto.CourierID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	address, err := dto.DeliveryAddress.ToDomain()
	if err != nil {
		return nil, err
	}

	lines, err := linesToDomain(dto.Lines)
	if err != nil {
		return nil, err
	}

	var prescription *order.Prescription
	if dto.PrescriptionFileRef != nil {
		var notes string
		if dto.PrescriptionNotes != nil {
			notes = *dto.PrescriptionNotes
		}
		prescription, err = order.RestorePrescription(*dto.PrescriptionFileRef, notes, dto.PrescriptionValidatedAt)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  ids[0],
		Number:              order.Number(dto.Number),
		CustomerID:          ids[1],
		PharmacyID:          ids[2],
		CourierID:           courierID,
		Status:              status,
		PaymentMethod:       order.PaymentMethod(dto.PaymentMethod),
		Lines:               lines,
		DeliveryAddress:     address,
		Notes:               dto.Notes,
		Prescription:        prescription,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
		EstimatedDeliveryAt: dto.EstimatedDeliveryAt,
		DeliveredAt:         dto.DeliveredAt,
		Version:             dto.Version,
	})
}

func linesToDomain(dtos []OrderLineDTO) ([]order.Line, error) {
	if len(dtos) == 0 {
		return nil, errors.New("order has no lines")
	}

	lines := make([]order.Line, len(dtos))
	seen := make([]bool, len(dtos))
	for _, dto := range dtos {
		if dto.Position < 0 || dto.Position >= len(dtos) || seen[dto.Position] {
			return nil, errors.New("order lines have inconsistent positions")
		}

		productID, err := shared.UUIDToDomain(dto.ProductID)
		if err != nil {
			return nil, err
		}
		line, err := order.NewLine(productID, dto.ProductName, dto.Quantity, dto.UnitPrice, dto.Discount)
		if err != nil {
			return nil, err
		}

		lines[dto.Position] = line
		seen[dto.Position] = true
	}

	return lines, nil
}

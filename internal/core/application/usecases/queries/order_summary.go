package queries

import (
	"database/sql"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID                  kernel.UUID
	Number              string
	CustomerID          kernel.UUID
	PharmacyID          kernel.UUID
	PharmacyName        string
	CourierID           *kernel.UUID
	Status              order.Status
	PaymentMethod       order.PaymentMethod
	Total               decimal.Decimal
	DeliveryAddress     kernel.Address
	CreatedAt           time.Time
	EstimatedDeliveryAt time.Time

	// DistanceKm is set by listings ranked by proximity.
	DistanceKm *float64
}

// Coordinates makes summaries rankable by services.Nearby.
func (s OrderSummary) Coordinates() *kernel.Coordinates {
	return s.DeliveryAddress.Coordinates()
}

const orderSummarySelect = `
	SELECT
		o.id,
		o.number,
		o.customer_id,
		o.pharmacy_id,
		ph.name,
		o.courier_id,
		o.status,
		o.payment_method,
		o.total,
		o.delivery_street,
		o.delivery_number,
		o.delivery_city,
		o.delivery_province,
		o.delivery_postal_code,
		o.delivery_country,
		o.delivery_latitude,
		o.delivery_longitude,
		o.created_at,
		o.estimated_delivery_at
	FROM orders o
	JOIN pharmacies ph ON ph.id = o.pharmacy_id
`

func scanOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			summary                    OrderSummary
			id, customerID, pharmacyID uuid.UUID
			courierID                  uuid.NullUUID
			status, paymentMethod      string
			address                    addressColumns
		)

		targets := []any{&id, &summary.Number, &customerID, &pharmacyID, &summary.PharmacyName,
			&courierID, &status, &paymentMethod, &summary.Total}
		targets = append(targets, address.targets()...)
		targets = append(targets, &summary.CreatedAt, &summary.EstimatedDeliveryAt)

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		var err error
		if summary.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if summary.CustomerID, err = toUUID(customerID); err != nil {
			return nil, err
		}
		if summary.PharmacyID, err = toUUID(pharmacyID); err != nil {
			return nil, err
		}
		if summary.CourierID, err = toOptionalUUID(courierID); err != nil {
			return nil, err
		}
		if summary.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if summary.PaymentMethod, err = order.ParsePaymentMethod(paymentMethod); err != nil {
			return nil, err
		}
		if summary.DeliveryAddress, err = address.toDomain(); err != nil {
			return nil, err
		}
		summary.CreatedAt = summary.CreatedAt.UTC()
		summary.EstimatedDeliveryAt = summary.EstimatedDeliveryAt.UTC()

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

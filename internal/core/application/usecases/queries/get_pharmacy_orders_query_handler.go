package queries

import (
	"context"

	"farmadelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPharmacyOrdersQueryHandler reads the orders placed with one pharmacy.
type GetPharmacyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPharmacyOrdersQueryHandler creates a handler over the read database.
func NewGetPharmacyOrdersQueryHandler(db *gorm.DB) GetPharmacyOrdersQueryHandler {
	return GetPharmacyOrdersQueryHandler{db: db}
}

// Handle returns the pharmacy's orders, newest first.
func (h GetPharmacyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPharmacyOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var statuses []string
	if query.status != nil {
		statuses = []string{query.status.String()}
	} else {
		for _, s := range order.Statuses() {
			if !s.IsFinal() {
				statuses = append(statuses, s.String())
			}
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect+`
		WHERE o.pharmacy_id = ? AND o.status IN ?
		ORDER BY o.created_at DESC, o.id
	`, query.actor.ID().Bytes(), statuses).Rows()
	if err != nil {
		return nil, err
	}
	return scanOrderSummaries(rows)
}

package queries

import (
	"context"

	"farmadelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetCourierActiveOrdersQueryHandler reads the deliveries a courier is carrying.
type GetCourierActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierActiveOrdersQueryHandler creates a handler over the read database.
func NewGetCourierActiveOrdersQueryHandler(db *gorm.DB) GetCourierActiveOrdersQueryHandler {
	return GetCourierActiveOrdersQueryHandler{db: db}
}

// Handle returns the en route orders assigned to the courier, oldest first.
func (h GetCourierActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCourierActiveOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect+`
		WHERE o.courier_id = ? AND o.status = ?
		ORDER BY o.created_at, o.id
	`, query.actor.ID().Bytes(), order.EnRoute.String()).Rows()
	if err != nil {
		return nil, err
	}
	return scanOrderSummaries(rows)
}

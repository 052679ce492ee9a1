package queries

import (
	"context"

	"farmadelivery/internal/core/ports"
	"farmadelivery/internal/pkg/errs"
)

// GetOrderQueryHandler loads the order aggregate and checks
// order.CanBeViewedBy before returning it.
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetOrderQueryHandler creates a handler that reads through the order
// repository of a fresh unit of work.
func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns a ForbiddenError when the actor may not see the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !o.CanBeViewedBy(query.actor) {
		return GetOrderQueryResponse{}, errs.NewForbiddenError("view order", "order belongs to someone else")
	}

	return orderView(o), nil
}

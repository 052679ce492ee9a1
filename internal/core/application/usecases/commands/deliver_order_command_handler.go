package commands

import (
	"context"
	"time"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
)

// DeliverOrderCommandHandler completes an order in transit.
type DeliverOrderCommandHandler struct {
	transition orderTransition
}

// NewDeliverOrderCommandHandler creates a handler for delivery confirmation.
func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher EventDispatcher,
	clock ports.Clock,
) *DeliverOrderCommandHandler {
	return &DeliverOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, dispatcher: dispatcher, clock: clock},
	}
}

// Handle returns ErrConflict when the order changed since it was read.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, aggregate *order.Order, now time.Time) error {
			return aggregate.Deliver(cmd.Actor(), now)
		})
}

package commands

import (
	"context"
	"time"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
)

// PrepareOrderCommandHandler confirms a pending order on behalf of its pharmacy.
type PrepareOrderCommandHandler struct {
	transition orderTransition
}

// NewPrepareOrderCommandHandler creates a handler for order confirmation.
func NewPrepareOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher EventDispatcher,
	clock ports.Clock,
) *PrepareOrderCommandHandler {
	return &PrepareOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, dispatcher: dispatcher, clock: clock},
	}
}

// Handle returns the order in its new status.
func (h *PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, aggregate *order.Order, now time.Time) error {
			return aggregate.Prepare(cmd.Actor(), now)
		})
}

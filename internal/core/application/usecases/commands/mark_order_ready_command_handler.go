package commands

import (
	"context"
	"time"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
)

// MarkOrderReadyCommandHandler moves a preparing order to ready, which makes it
// visible to couriers.
type MarkOrderReadyCommandHandler struct {
	transition orderTransition
}

// NewMarkOrderReadyCommandHandler creates a handler for the ready transition.
func NewMarkOrderReadyCommandHandler(
	uowFactory UoWFactory,
	dispatcher EventDispatcher,
	clock ports.Clock,
) *MarkOrderReadyCommandHandler {
	return &MarkOrderReadyCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, dispatcher: dispatcher, clock: clock},
	}
}

// Handle returns the order in its new status.
func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, aggregate *order.Order, now time.Time) error {
			return aggregate.MarkReady(cmd.Actor(), now)
		})
}

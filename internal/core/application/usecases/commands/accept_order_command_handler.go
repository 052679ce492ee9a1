package commands

import (
	"context"
	"fmt"
	"time"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/core/ports"
	"farmadelivery/internal/pkg/errs"
)

// AcceptOrderCommandHandler assigns a ready order to the acting courier when
// the delivery address is within the courier's proximity radius.
//
// The order update is conditional on the version that was read, so when two
// couriers accept the same order at once exactly one commit succeeds and the
// other gets a Conflict.
type AcceptOrderCommandHandler struct {
	transition orderTransition
	matcher    services.ProximityMatcher
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
// The matcher decides whether the courier is close enough to the pharmacy.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	matcher services.ProximityMatcher,
	dispatcher EventDispatcher,
	clock ports.Clock,
) *AcceptOrderCommandHandler {
	return &AcceptOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, dispatcher: dispatcher, clock: clock},
		matcher:    matcher,
	}
}

// Handle assigns the courier and moves the order to in transit.
// Returns ErrConflict when another courier won the race.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.OrderID(),
		func(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error {
			courier, err := uow.CourierRepository().Get(ctx, cmd.Actor().ID())
			if err != nil {
				return err
			}
			if !courier.IsActive() {
				return errs.NewForbiddenError("accept order", "courier is not active")
			}

			subject := "order " + aggregate.ID().String()
			origin := courier.CurrentLocation()
			if origin == nil {
				return errs.NewConflictError(subject, "courier location is unknown")
			}
			if aggregate.Coordinates() == nil {
				return errs.NewConflictError(subject, "delivery address has no coordinates")
			}

			distance, ok := h.matcher.IsWithin(origin, aggregate.Coordinates())
			if !ok {
				return errs.NewConflictError(subject, fmt.Sprintf(
					"delivery address is %.2f km away, outside the %.2f km radius", distance, h.matcher.RadiusKm()))
			}

			return aggregate.Accept(cmd.Actor(), now)
		})
}

package commands

import (
	"context"

	"farmadelivery/internal/core/ports"
)

// RejectOrderCommandHandler records a rejection. The order itself is not
// modified, so its version is not bumped and nothing is notified. Rejecting
// twice is harmless.
type RejectOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewRejectOrderCommandHandler creates a handler for courier rejections.
func NewRejectOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) *RejectOrderCommandHandler {
	return &RejectOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle fails with a Conflict for a finished order or one already assigned
// to the acting courier.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	rejection, err := aggregate.Reject(cmd.Actor(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.AddRejection(ctx, rejection); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

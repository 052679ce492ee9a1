package commands

import (
	"context"

	"farmadelivery/internal/core/ports"
)

// UpdateCourierLocationCommandHandler stores the last reported courier position
// together with the time it was received.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      ports.Clock
}

// NewUpdateCourierLocationCommandHandler creates a handler for position reports.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	clock ports.Clock,
) *UpdateCourierLocationCommandHandler {
	return &UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle updates the position of the acting courier.
func (h *UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
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

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}

	if err = c.UpdateLocation(cmd.Location(), h.clock.Now()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

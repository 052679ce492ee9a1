package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler handles courier registration.
// Builds the courier aggregate from the command and persists it in its own
// transaction. A courier starts active and without a reported position unless
// the command carries a test location.
//
// Example:
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	cmd, _ := NewCreateCourierCommand(kernel.NewUUID(), "Ana", courier.Motorcycle, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("courier registration failed: %w", err)
//	}
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
// Requires a CourierUoWFactory for transactional persistence operations.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) *CreateCourierCommandHandler {
	return &CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier creation command.
// Rolls back on any error, so a failed registration leaves nothing behind.
func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Vehicle(), cmd.TestLocation())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

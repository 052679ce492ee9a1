package commands

import (
	"context"
	"time"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and puts the stock of every line
// back, in the same transaction as the status change.
type CancelOrderCommandHandler struct {
	transition  orderTransition
	invalidator CatalogInvalidator
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// The invalidator is told about the pharmacy whose stock was restored.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher EventDispatcher,
	invalidator CatalogInvalidator,
	clock ports.Clock,
) *CancelOrderCommandHandler {
	return &CancelOrderCommandHandler{
		transition:  orderTransition{uowFactory: uowFactory, dispatcher: dispatcher, clock: clock},
		invalidator: invalidator,
	}
}

// Handle returns the cancelled order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cancelled, err := h.transition.run(ctx, cmd.OrderID(),
		func(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error {
			if err := aggregate.Cancel(cmd.Actor(), now); err != nil {
				return err
			}
			return restoreStock(ctx, uow, aggregate.Lines())
		})
	if err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, cancelled.PharmacyID())
	return cancelled, nil
}

func restoreStock(ctx context.Context, uow UoW, lines []order.Line) error {
	productRepo := uow.ProductRepository()

	for _, line := range lines {
		product, err := productRepo.Get(ctx, line.ProductID())
		if err != nil {
			return err
		}
		if err = product.Release(line.Quantity()); err != nil {
			return err
		}
		if err = productRepo.Update(ctx, product); err != nil {
			return err
		}
	}

	return nil
}

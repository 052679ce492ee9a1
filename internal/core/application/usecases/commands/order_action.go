package commands

import (
	"context"
	"errors"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
	"farmadelivery/internal/pkg/guard"
)

// orderAction is the payload shared by the commands that act on one order.
type orderAction struct {
	actor   kernel.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func newOrderAction(actor kernel.Actor, orderID kernel.UUID, action string, role kernel.Role) (orderAction, error) {
	if err := errors.Join(
		actor.Require(action, role),
		orderID.Validate(),
	); err != nil {
		return orderAction{}, err
	}

	return orderAction{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (a orderAction) Actor() kernel.Actor  { return a.actor }
func (a orderAction) OrderID() kernel.UUID { return a.orderID }

// orderTransition runs one lifecycle transition: load the order, apply the
// change, store it with its version check, commit, then notify.
type orderTransition struct {
	uowFactory UoWFactory
	dispatcher EventDispatcher
	clock      ports.Clock
}

type transitionFunc func(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error

func (t orderTransition) run(ctx context.Context, orderID kernel.UUID, apply transitionFunc) (*order.Order, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = apply(ctx, uow, aggregate, t.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	t.dispatcher.Dispatch(ctx, aggregate.DomainEvents()...)
	aggregate.ClearDomainEvents()
	return aggregate, nil
}

// Package commands contains the operations that change system state. Every
// command is validated on construction and handled inside one unit of work;
// status change notifications are dispatched only after the commit.
package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	CatalogRepoFactory interface {
		PharmacyRepository() ports.PharmacyRepository
		ProductRepository() ports.ProductRepository
		InsuranceRepository() ports.InsuranceRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// CourierUoW is used by commands that only touch couriers.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans every aggregate. Checkout, for example, reads the customer and
	// the insurance discounts, reserves product stock and adds the order in one
	// transaction.
	//
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//   ...
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		CatalogRepoFactory
		CustomerRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Collaborators notified after a successful commit.
type (
	// EventDispatcher publishes order status changes. It must not fail: the
	// change is already committed.
	EventDispatcher interface {
		Dispatch(ctx context.Context, events ...order.StatusChangedEvent)
	}

	// CatalogInvalidator drops cached catalog reads of a pharmacy whose
	// products changed.
	CatalogInvalidator interface {
		Invalidate(ctx context.Context, pharmacyID kernel.UUID)
	}
)

// NoopCatalogInvalidator is used when no catalog cache is configured.
type NoopCatalogInvalidator struct{}

// Invalidate does nothing.
func (NoopCatalogInvalidator) Invalidate(context.Context, kernel.UUID) {}

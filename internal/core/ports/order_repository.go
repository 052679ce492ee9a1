// Package ports defines the contracts between the application layer and the
// adapters: repositories, the unit of work and outbound collaborators.
package ports

import (
	"context"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates with their lines, prescription and
// rejections.
type OrderRepository interface {
	// Add persists a new order at version 0.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes if the stored version still equals
	// aggregate.Version() and bumps it. A stale version is reported as a
	// Conflict caused by errs.VersionIsInvalidError, so two couriers accepting
	// the same order cannot both succeed.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AddRejection records a rejection. Recording the same (order, courier)
	// pair again is a no-op.
	AddRejection(ctx context.Context, rejection order.Rejection) error
}

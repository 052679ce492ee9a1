package ports

import (
	"context"

	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
// Couriers are stored with their last reported position and the time it was
// received, which is what availability is computed from.
//
// Example:
//
//	c, err := repo.Get(ctx, courierID)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return fmt.Errorf("unknown courier %s", courierID)
//	}
//	_ = c.UpdateLocation(coords, clock.Now())
//	err = repo.Update(ctx, c)
type CourierRepository interface {
	// Add persists a new courier aggregate.
	// Fails with a Conflict when a courier with the same ID exists.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier, including its active
	// flag and last known location.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get returns the courier or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}

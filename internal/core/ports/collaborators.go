package ports

import (
	"context"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
)

// Notifier tells the customer about a status change of their order.
type Notifier interface {
	Publish(ctx context.Context, event order.StatusChangedEvent) error
}

// Geocoder resolves a free-text address. It returns an
// errs.ObjectNotFoundError when the address cannot be located.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (kernel.Coordinates, error)
}

// Clock returns the current time. Handlers take it as a dependency so that
// time-based rules such as courier staleness are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

package order

import (
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
)

// StatusChangedEvent is raised by every committed status transition,
// including the creation of an order in Pending (From is Unknown then).
type StatusChangedEvent struct {
	OrderID    kernel.UUID
	Number     Number
	CustomerID kernel.UUID
	PharmacyID kernel.UUID
	CourierID  *kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

package order

import (
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
)

// Rejection records that a courier declined an order. The order keeps its
// status; it is only hidden from that courier's available orders. Recording
// the same pair twice has no further effect.
type Rejection struct {
	orderID    kernel.UUID
	courierID  kernel.UUID
	rejectedAt time.Time
}

// RestoreRejection rebuilds a persisted rejection.
func RestoreRejection(orderID, courierID kernel.UUID, rejectedAt time.Time) Rejection {
	return Rejection{orderID: orderID, courierID: courierID, rejectedAt: rejectedAt.UTC()}
}

func (r Rejection) OrderID() kernel.UUID   { return r.orderID }
func (r Rejection) CourierID() kernel.UUID { return r.courierID }
func (r Rejection) RejectedAt() time.Time  { return r.rejectedAt }

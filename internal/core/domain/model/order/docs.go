// Package order provides the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root, with lines, totals, delivery address and an
//     optional prescription
//   - Status: the state machine Pending -> Preparing -> Ready -> EnRoute ->
//     Delivered, with Cancelled reachable before the order leaves the pharmacy
//   - Line: a priced product of the order
//   - Rejection: a courier declining an order
//   - StatusChangedEvent: raised by every transition and published to the
//     customer after the change is committed
//
// Transition methods take the acting kernel.Actor. A caller with the wrong role
// or ownership gets a Forbidden error; a transition from the wrong status gets
// a Conflict error naming the current and expected statuses. Neither mutates
// the order.
package order

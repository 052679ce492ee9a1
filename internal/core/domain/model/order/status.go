package order

import (
	"fmt"
	"strings"

	"farmadelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Transitions:
//
//	Pending ──> Preparing ──> Ready ──> EnRoute ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Confirmed is a valid stored state kept for orders confirmed by staff
// outside the preparation flow; no transition leads into it and it can only
// move on to Preparing. Delivered and Cancelled are final.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	EnRoute
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Confirmed: "CONFIRMED",
	Preparing: "PREPARING",
	Ready:     "READY",
	EnRoute:   "EN_ROUTE",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, EnRoute, Delivered, Cancelled}
}

// ParseStatus converts the wire name of a status back to a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects values outside the declared statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, e.g. "EN_ROUTE", or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// Prepare moves a pending or confirmed order into preparation.
func (s Status) Prepare() (Status, error) {
	if err := s.expect(Pending, Confirmed); err != nil {
		return Unknown, err
	}
	return Preparing, nil
}

// MarkReady moves an order being prepared to ready for pickup.
func (s Status) MarkReady() (Status, error) {
	if err := s.expect(Preparing); err != nil {
		return Unknown, err
	}
	return Ready, nil
}

// Accept moves a ready order onto the road.
func (s Status) Accept() (Status, error) {
	if err := s.expect(Ready); err != nil {
		return Unknown, err
	}
	return EnRoute, nil
}

// Deliver completes an order on the road.
func (s Status) Deliver() (Status, error) {
	if err := s.expect(EnRoute); err != nil {
		return Unknown, err
	}
	return Delivered, nil
}

// Cancel diverts an order that has not left the pharmacy.
func (s Status) Cancel() (Status, error) {
	if err := s.expect(Pending, Confirmed, Preparing); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}

// ValidateCanHaveCourier checks that only orders on the road or delivered
// have a courier.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	needsCourier := s == EnRoute || s == Delivered
	if hasCourier && !needsCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !hasCourier && needsCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

func (s Status) expect(allowed ...Status) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}

	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = a.String()
	}
	return errs.NewConflictError("order status",
		fmt.Sprintf("status is %s, expected %s", s, strings.Join(names, " or ")))
}

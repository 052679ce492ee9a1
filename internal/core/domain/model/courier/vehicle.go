package courier

import (
	"fmt"
	"strings"

	"farmadelivery/internal/pkg/errs"
)

// Vehicle is the kind of vehicle a courier rides.
type Vehicle string

const (
	Bicycle    Vehicle = "BICYCLE"
	Motorcycle Vehicle = "MOTORCYCLE"
)

// ParseVehicle accepts the wire name in any case.
func ParseVehicle(s string) (Vehicle, error) {
	v := Vehicle(strings.ToUpper(strings.TrimSpace(s)))
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// Validate rejects unknown vehicles.
func (v Vehicle) Validate() error {
	switch v {
	case Bicycle, Motorcycle:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle", fmt.Errorf("%q is not a known vehicle", string(v)))
	}
}

func (v Vehicle) String() string {
	return string(v)
}

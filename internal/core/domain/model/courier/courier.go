package courier

import (
	"errors"
	"strings"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

// StalenessWindow is how long a location update keeps a courier available.
const StalenessWindow = 10 * time.Minute

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errs.NewValueIsRequiredError("courier must be created via NewCourier")
)

// Courier delivers orders. Its position is reported by the courier app through
// UpdateLocation; between updates the last known position is kept.
type Courier struct {
	id                kernel.UUID
	name              string
	vehicle           Vehicle
	active            bool
	location          *kernel.Coordinates
	locationUpdatedAt *time.Time
	testLocation      *kernel.Coordinates
	guard             guard.ConstructorGuard
}

// NewCourier registers an active courier with no live position. testLocation
// is optional.
func NewCourier(id kernel.UUID, name string, vehicle Vehicle, testLocation *kernel.Coordinates) (*Courier, error) {
	return RestoreCourier(id, name, vehicle, true, nil, nil, testLocation)
}

// RestoreCourier rebuilds a persisted courier. location and updatedAt must be
// both set or both nil.
func RestoreCourier(
	id kernel.UUID,
	name string,
	vehicle Vehicle,
	active bool,
	location *kernel.Coordinates,
	updatedAt *time.Time,
	testLocation *kernel.Coordinates,
) (*Courier, error) {
	c := &Courier{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
		c.setLiveLocation(location, updatedAt),
		c.setTestLocation(testLocation),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
//
// Example:
//
//	a, _ := NewCourier(id, "Ana", Bicycle, nil)
//	b, _ := NewCourier(id, "Bruno", Motorcycle, nil)
//	a.IsEqual(b) // true, same ID
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID  { return c.id }
func (c *Courier) Name() string     { return c.name }
func (c *Courier) Vehicle() Vehicle { return c.vehicle }
func (c *Courier) IsActive() bool   { return c.active }
func (c *Courier) Deactivate()      { c.active = false }
func (c *Courier) Activate()        { c.active = true }

// Location returns the last reported position, or nil if none was reported.
func (c *Courier) Location() *kernel.Coordinates {
	return copyCoordinates(c.location)
}

// LocationUpdatedAt returns when the last position was received, or nil.
func (c *Courier) LocationUpdatedAt() *time.Time {
	if c.locationUpdatedAt == nil {
		return nil
	}
	at := *c.locationUpdatedAt
	return &at
}

// TestLocation returns the fixed position configured for test couriers, or nil.
func (c *Courier) TestLocation() *kernel.Coordinates {
	return copyCoordinates(c.testLocation)
}

// CurrentLocation is the position used for matching: the last reported one,
// falling back to the test location. It is nil when neither exists.
func (c *Courier) CurrentLocation() *kernel.Coordinates {
	if c.location != nil {
		return c.Location()
	}
	return c.TestLocation()
}

// Coordinates makes couriers usable with the proximity matcher.
func (c *Courier) Coordinates() *kernel.Coordinates {
	return c.CurrentLocation()
}

// UpdateLocation records a position reported at the given time.
func (c *Courier) UpdateLocation(location kernel.Coordinates, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("location timestamp")
	}

	c.location = &location
	at = at.UTC()
	c.locationUpdatedAt = &at
	return nil
}

// IsAvailable reports whether the courier sent a location update less than
// StalenessWindow before now.
func (c *Courier) IsAvailable(now time.Time) bool {
	if c.locationUpdatedAt == nil {
		return false
	}
	return now.Sub(*c.locationUpdatedAt) < StalenessWindow
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicle(v Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	c.vehicle = v
	return nil
}

func (c *Courier) setLiveLocation(location *kernel.Coordinates, updatedAt *time.Time) error {
	if location == nil && updatedAt == nil {
		return nil
	}
	if location == nil || updatedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("location",
			errors.New("position and update timestamp must be set together"))
	}
	return c.UpdateLocation(*location, *updatedAt)
}

func (c *Courier) setTestLocation(location *kernel.Coordinates) error {
	if location == nil {
		c.testLocation = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.testLocation = copyCoordinates(location)
	return nil
}

func copyCoordinates(c *kernel.Coordinates) *kernel.Coordinates {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

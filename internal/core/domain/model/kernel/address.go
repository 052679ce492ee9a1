package kernel

import (
	"errors"
	"strings"

	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

// DefaultCountry is assumed when an address does not name one.
const DefaultCountry = "Argentina"

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a postal address with an optional geocoded position.
// Coordinates stay nil until a geocoder resolves them or the client sends them.
type Address struct { //nolint:recvcheck //using for validation
	street      string
	number      string
	city        string
	province    string
	postalCode  string
	country     string
	coordinates *Coordinates
	guard       guard.ConstructorGuard
}

// NewAddress validates the required parts and trims surrounding whitespace.
// An empty country becomes DefaultCountry.
func NewAddress(street, number, city, province, postalCode, country string, coordinates *Coordinates) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setStreet(street),
		a.setCity(city),
		a.setCoordinates(coordinates),
	); err != nil {
		return Address{}, err
	}

	a.number = strings.TrimSpace(number)
	a.province = strings.TrimSpace(province)
	a.postalCode = strings.TrimSpace(postalCode)
	a.country = strings.TrimSpace(country)
	if a.country == "" {
		a.country = DefaultCountry
	}

	return a, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string     { return a.street }
func (a Address) Number() string     { return a.number }
func (a Address) City() string       { return a.city }
func (a Address) Province() string   { return a.province }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

// Coordinates returns a copy of the position, or nil when it is unknown.
func (a Address) Coordinates() *Coordinates {
	if a.coordinates == nil {
		return nil
	}
	c := *a.coordinates
	return &c
}

// HasCoordinates reports whether the address was geocoded.
func (a Address) HasCoordinates() bool {
	return a.coordinates != nil
}

// WithCoordinates returns a copy of the address positioned at c.
func (a Address) WithCoordinates(c Coordinates) (Address, error) {
	if err := errors.Join(a.Validate(), c.Validate()); err != nil {
		return Address{}, err
	}

	a.coordinates = &c
	return a, nil
}

// Query renders the address the way free-form geocoding endpoints expect it:
// "street number, city, province, postal code, country" with empty parts skipped.
func (a Address) Query() string {
	streetLine := strings.TrimSpace(a.street + " " + a.number)

	parts := make([]string, 0, 5)
	for _, p := range []string{streetLine, a.city, a.province, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}

// String returns the geocoding query form of the address.
func (a Address) String() string {
	return a.Query()
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}

	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}

	a.city = city
	return nil
}

func (a *Address) setCoordinates(c *Coordinates) error {
	if c == nil {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}

	copied := *c
	a.coordinates = &copied
	return nil
}

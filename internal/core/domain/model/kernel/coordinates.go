package kernel

import (
	"errors"
	"fmt"
	"math"

	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean Earth radius used by DistanceKm.
	EarthRadiusKm = 6371.0
)

var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates")

// Coordinates is a validated latitude/longitude pair in decimal degrees.
// Entities keep it behind a pointer: nil means the position is unknown
// (not geocoded yet, or never reported by the courier).
type Coordinates struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewCoordinates creates a position. Latitude must lie in [-90, 90] and
// longitude in [-180, 180].
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	c := Coordinates{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setLat(lat), c.setLon(lon)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// NewCoordinatesPtr is NewCoordinates for optional fields.
func NewCoordinatesPtr(lat, lon float64) (*Coordinates, error) {
	c, err := NewCoordinates(lat, lon)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate ensures the coordinates were created through NewCoordinates.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (c Coordinates) Lat() float64 {
	return c.lat
}

// Lon returns the longitude in decimal degrees.
func (c Coordinates) Lon() float64 {
	return c.lon
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%.6f,%.6f)", c.lat, c.lon)
}

// DistanceKm returns the great-circle (Haversine) distance between a and b.
// ok is false when either point is missing; callers must treat that as
// "not comparable", never as zero distance.
func DistanceKm(a, b *Coordinates) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}

	lat1 := degreesToRadians(a.lat)
	lat2 := degreesToRadians(b.lat)
	dLat := lat2 - lat1
	dLon := degreesToRadians(b.lon - a.lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h marginally above 1 for antipodal points.
	h = math.Min(1, h)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h)), true
}

func (c *Coordinates) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	c.lat = lat
	return nil
}

func (c *Coordinates) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lon, MinLongitude, MaxLongitude)
	}

	c.lon = lon
	return nil
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/ports"
)

// locate returns address positioned by the geocoder. Addresses that already
// have coordinates are returned as they are. Geocoding is best effort: on
// failure the address stays without coordinates and proximity filtering for it
// falls back to showing everything.
func locate(ctx context.Context, geocoder ports.Geocoder, address kernel.Address) kernel.Address {
	if geocoder == nil || address.HasCoordinates() {
		return address
	}

	coordinates, err := geocoder.Geocode(ctx, address.Query())
	if err != nil {
		return address
	}

	located, err := address.WithCoordinates(coordinates)
	if err != nil {
		return address
	}
	return located
}

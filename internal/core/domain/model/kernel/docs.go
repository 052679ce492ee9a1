// Package kernel holds the value objects shared by every aggregate of the
// pharmacy delivery domain.
//
// The package includes:
//   - UUID: identifier of customers, pharmacies, products, couriers and orders
//   - Coordinates and DistanceKm: validated WGS84 positions and Haversine distance
//   - Address: postal address with an optional geocoded position
//   - Actor and Role: the caller on whose behalf an operation runs
//
// Every value object embeds guard.ConstructorGuard, so a zero value fails
// Validate and cannot reach persistence.
package kernel

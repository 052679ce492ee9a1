// Package services provides stateless domain services that work across
// aggregates.
//
// The package includes:
//   - Nearby and ProximityMatcher: radius filtering and distance ranking of
//     anything with coordinates (pharmacies near a customer, orders near a
//     courier)
//   - PricingEngine: the price of a product for a customer after the discount
//     of their insurance plan
//
// Services never load data themselves; callers pass the candidates in.
package services

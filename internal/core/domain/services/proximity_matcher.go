package services

import (
	"fmt"
	"math"
	"sort"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
)

// DefaultRadiusKm is the proximity radius used when none is configured.
const DefaultRadiusKm = 2.0

// Locatable is anything with an optional position.
type Locatable interface {
	Coordinates() *kernel.Coordinates
}

// Match is a candidate within the radius together with its distance.
type Match[T Locatable] struct {
	Candidate  T
	DistanceKm float64
}

// Nearby returns the candidates at most radiusKm away from origin, closest
// first. Candidates without coordinates are skipped, and a nil origin matches
// nothing. Candidates at the same distance keep their input order.
//
//	matches := services.Nearby(customer.Address().Coordinates(), pharmacies, 2)
//	for _, m := range matches {
//	    fmt.Printf("%s at %.2f km\n", m.Candidate.Name(), m.DistanceKm)
//	}
func Nearby[T Locatable](origin *kernel.Coordinates, candidates []T, radiusKm float64) []Match[T] {
	matches := make([]Match[T], 0, len(candidates))
	if origin == nil {
		return matches
	}

	for _, c := range candidates {
		d, ok := kernel.DistanceKm(origin, c.Coordinates())
		if !ok || d > radiusKm {
			continue
		}
		matches = append(matches, Match[T]{Candidate: c, DistanceKm: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches
}

// ProximityMatcher applies one configured radius.
type ProximityMatcher struct {
	radiusKm float64
}

// NewProximityMatcher creates a matcher for the given radius in kilometers.
// The radius must be a finite positive number.
func NewProximityMatcher(radiusKm float64) (ProximityMatcher, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm <= 0 {
		return ProximityMatcher{}, errs.NewValueIsInvalidErrorWithCause("radius",
			fmt.Errorf("%v is not a positive number of kilometers", radiusKm))
	}
	return ProximityMatcher{radiusKm: radiusKm}, nil
}

// RadiusKm returns the configured radius, or DefaultRadiusKm for a zero matcher.
func (m ProximityMatcher) RadiusKm() float64 {
	if m.radiusKm <= 0 {
		return DefaultRadiusKm
	}
	return m.radiusKm
}

// IsWithin reports whether target is within the radius of origin. It is false
// when either position is unknown.
func (m ProximityMatcher) IsWithin(origin, target *kernel.Coordinates) (float64, bool) {
	d, ok := kernel.DistanceKm(origin, target)
	if !ok {
		return 0, false
	}
	return d, d <= m.RadiusKm()
}

// Rank is Nearby with the configured radius. It is a function rather than a
// method because Go methods cannot have type parameters.
func Rank[T Locatable](m ProximityMatcher, origin *kernel.Coordinates, candidates []T) []Match[T] {
	return Nearby(origin, candidates, m.RadiusKm())
}

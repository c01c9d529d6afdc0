// Package geo computes distances on the WGS84 ellipsoid.
package geo

import (
	"context"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/tidwall/geodesic"
)

const metersPerMile = 1609.344

// Miles returns the geodesic distance between a and b in statute miles.
// Identical points yield 0 and antipodal points resolve to half a meridian.
func Miles(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}

	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lng, b.Lat, b.Lng, &meters, nil, nil)
	return meters / metersPerMile
}

// Geodesic is a DistanceProvider computing distances in-process.
type Geodesic struct{}

func (Geodesic) Distances(_ context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]float64, error) {
	out := make([]float64, len(destinations))
	for i, d := range destinations {
		out[i] = Miles(origin, d)
	}
	return out, nil
}

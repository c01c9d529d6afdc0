package ports

import (
	"context"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

// Contract for computing straight-line distances from one origin to many points.
type DistanceProvider interface {
	// Return the distance in miles from origin to each destination, index-aligned.
	Distances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]float64, error)
}

package ports

import "context"

// Cache of origin->destination distances in miles, keyed by coordinate strings.
type DistanceCache interface {
	// Return the cached entries among destinations. Misses are absent from the map.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]float64, error)
	// Store distances for one origin.
	PutMany(ctx context.Context, origin string, miles map[string]float64) error
}

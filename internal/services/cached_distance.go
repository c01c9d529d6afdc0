package services

import (
	"context"
	"fmt"
	"log"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/obs"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
)

// CachedDistance memoizes another provider's results by coordinate pair.
// Cache failures are logged and the wrapped provider answers instead.
type CachedDistance struct {
	Provider ports.DistanceProvider
	Cache    ports.DistanceCache
}

func NewCachedDistance(provider ports.DistanceProvider, cache ports.DistanceCache) *CachedDistance {
	return &CachedDistance{Provider: provider, Cache: cache}
}

func (c *CachedDistance) Distances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]float64, error) {
	originKey := origin.Key()
	keys := make([]string, len(destinations))
	for i, d := range destinations {
		keys[i] = d.Key()
	}

	cached, err := c.Cache.GetMany(ctx, originKey, keys)
	if err != nil {
		obs.DistanceCacheLookups.WithLabelValues("error").Inc()
		log.Printf("req_id=%s op=distance.cache.get err=%v", obs.RequestID(ctx), err)
		cached = nil
	}

	out := make([]float64, len(destinations))
	var missIdx []int
	var missPts []domain.Coordinates
	for i, k := range keys {
		if m, ok := cached[k]; ok {
			out[i] = m
			continue
		}
		missIdx = append(missIdx, i)
		missPts = append(missPts, destinations[i])
	}

	obs.DistanceCacheLookups.WithLabelValues("hit").Add(float64(len(destinations) - len(missIdx)))
	obs.DistanceCacheLookups.WithLabelValues("miss").Add(float64(len(missIdx)))

	if len(missPts) == 0 {
		return out, nil
	}

	computed, err := c.Provider.Distances(ctx, origin, missPts)
	if err != nil {
		return nil, fmt.Errorf("cached distance: %w", err)
	}
	if len(computed) != len(missPts) {
		return nil, fmt.Errorf("cached distance: got %d results for %d destinations", len(computed), len(missPts))
	}

	fresh := make(map[string]float64, len(missIdx))
	for j, i := range missIdx {
		out[i] = computed[j]
		fresh[keys[i]] = computed[j]
	}

	if err := c.Cache.PutMany(ctx, originKey, fresh); err != nil {
		log.Printf("req_id=%s op=distance.cache.put err=%v", obs.RequestID(ctx), err)
	}

	return out, nil
}

package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/obs"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
)

// BuildRoute returns the clients in the zones currently assigned to worker,
// ordered by straight-line distance from depot, nearest first.
//
// Zone membership is an exact string match on the worker name. Equal
// distances fall back to ascending client id so output is deterministic.
// This orders stops; it does not minimize travel between them.
func BuildRoute(
	ctx context.Context,
	worker string,
	depot domain.Coordinates,
	clients []domain.Client,
	zones map[string]string,
	provider ports.DistanceProvider,
) ([]domain.Client, error) {
	if provider == nil {
		return nil, errors.New("build route: distance provider must be non-nil")
	}

	assigned := make(map[string]struct{})
	for zone, w := range zones {
		if w == worker {
			assigned[zone] = struct{}{}
		}
	}

	subset := make([]domain.Client, 0)
	for _, c := range clients {
		if _, ok := assigned[c.Zone]; ok {
			subset = append(subset, c)
		}
	}
	if len(subset) == 0 {
		return subset, nil
	}

	points := make([]domain.Coordinates, len(subset))
	for i, c := range subset {
		points[i] = c.Location
	}

	miles, err := provider.Distances(ctx, depot, points)
	if err != nil {
		return nil, fmt.Errorf("build route: distances from depot: %w", err)
	}
	if len(miles) != len(subset) {
		return nil, fmt.Errorf("build route: got %d distances for %d clients", len(miles), len(subset))
	}

	type stop struct {
		client domain.Client
		miles  float64
	}
	stops := make([]stop, len(subset))
	for i, c := range subset {
		stops[i] = stop{client: c, miles: miles[i]}
	}

	// cmp.Compare orders NaN first, keeping the sort consistent when a
	// stored coordinate is out of range.
	slices.SortStableFunc(stops, func(a, b stop) int {
		if c := cmp.Compare(a.miles, b.miles); c != 0 {
			return c
		}
		return cmp.Compare(a.client.ID, b.client.ID)
	})

	route := make([]domain.Client, len(stops))
	for i, s := range stops {
		route[i] = s.client
	}
	return route, nil
}

// RoutePlanner builds worker routes from the live registry and zone mapping.
type RoutePlanner struct {
	Clients  *ClientRegistry
	Zones    *ZoneAssignment
	Distance ports.DistanceProvider
	Depot    domain.Coordinates
}

func NewRoutePlanner(clients *ClientRegistry, zones *ZoneAssignment, distance ports.DistanceProvider, depot domain.Coordinates) *RoutePlanner {
	return &RoutePlanner{Clients: clients, Zones: zones, Distance: distance, Depot: depot}
}

// Route snapshots zones and clients, then orders the worker's stops.
// An unknown worker gets an empty route, not an error.
func (p *RoutePlanner) Route(ctx context.Context, worker string) (_ []domain.Client, err error) {
	defer obs.Time(ctx, "route.build")(&err)

	zones, err := p.Zones.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("route planner: %w", err)
	}

	clients, err := p.Clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("route planner: %w", err)
	}

	route, err := BuildRoute(ctx, worker, p.Depot, clients, zones, p.Distance)
	if err != nil {
		return nil, fmt.Errorf("route planner: worker %q: %w", worker, err)
	}

	obs.RouteStops.Observe(float64(len(route)))
	return route, nil
}

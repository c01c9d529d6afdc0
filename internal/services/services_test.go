package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/cache"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/memory"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/geo"
)

var depot = domain.Coordinates{Lat: 33.605, Lng: -111.935}

type fixture struct {
	registry *ClientRegistry
	zones    *ZoneAssignment
	planner  *RoutePlanner
}

func newFixture(t *testing.T, opts RegistryOptions, clients ...domain.Client) fixture {
	t.Helper()

	clientRepo, err := memory.NewClientRepository(clients)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zoneRepo := memory.NewZoneRepository([]domain.Zone{
		{Name: "Zone 1", Worker: "Alice"},
		{Name: "Zone 2", Worker: "Worker 2"},
		{Name: "Zone 3", Worker: domain.Unassigned},
	})

	registry := NewClientRegistry(clientRepo, zoneRepo, opts)
	zones := NewZoneAssignment(zoneRepo)
	return fixture{
		registry: registry,
		zones:    zones,
		planner:  NewRoutePlanner(registry, zones, geo.Geodesic{}, depot),
	}
}

func client(id int, zone string, lat, lng float64) domain.Client {
	return *domain.NewClient(id, domain.Coordinates{Lat: lat, Lng: lng}, zone, 1, 1)
}

func ids(clients []domain.Client) []int {
	out := make([]int, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegistryUpdateFlipsFirstServiceOnce(t *testing.T) {
	f := newFixture(t, RegistryOptions{}, client(1, "Zone 1", 33.61, -111.93))
	ctx := context.Background()

	before, _ := f.registry.Get(ctx, 1)
	if !before.FirstService {
		t.Fatal("client should start in first service")
	}

	got, err := f.registry.Update(ctx, 1, domain.ClientPatch{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FirstService {
		t.Fatal("first update should end first service")
	}

	note := "bins by the garage"
	got, err = f.registry.Update(ctx, 1, domain.ClientPatch{Instructions: &note})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FirstService || got.Instructions != note {
		t.Fatalf("second update: %+v", got)
	}
}

func TestRegistryUpdateMergesFieldsIndividually(t *testing.T) {
	f := newFixture(t, RegistryOptions{}, client(1, "Zone 1", 33.61, -111.93))
	ctx := context.Background()

	note, photo := "gate code 1234", "https://cdn.example.com/p.jpg"
	if _, err := f.registry.Update(ctx, 1, domain.ClientPatch{Instructions: &note}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.registry.Update(ctx, 1, domain.ClientPatch{PhotoURL: &photo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Instructions != note || got.PhotoURL != photo {
		t.Fatalf("fields not merged: %+v", got)
	}
}

func TestRegistryUpdateUnknownClient(t *testing.T) {
	f := newFixture(t, RegistryOptions{}, client(1, "Zone 1", 33.61, -111.93))
	ctx := context.Background()

	zone := "Zone 2"
	_, err := f.registry.Update(ctx, 99, domain.ClientPatch{Zone: &zone})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	c, _ := f.registry.Get(ctx, 1)
	if c.Zone != "Zone 1" || !c.FirstService {
		t.Fatalf("unrelated client mutated: %+v", c)
	}

	if _, err := f.registry.Get(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get err = %v, want ErrNotFound", err)
	}
}

func TestRegistryPermissiveAcceptsAnything(t *testing.T) {
	f := newFixture(t, RegistryOptions{}, client(1, "Zone 1", 33.61, -111.93))

	zone, bins := "Zone 42", 7
	got, err := f.registry.Update(context.Background(), 1, domain.ClientPatch{Zone: &zone, TrashBins: &bins})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Zone != zone || got.TrashBins != bins {
		t.Fatalf("permissive update not applied: %+v", got)
	}
	// Billing stays at its creation values.
	if got.Actions != 4 || got.MonthlyCost != 60 {
		t.Fatalf("billing recomputed unexpectedly: actions=%d cost=%d", got.Actions, got.MonthlyCost)
	}
}

func TestRegistryStrictRejectsInvalidPatch(t *testing.T) {
	f := newFixture(t, RegistryOptions{StrictZones: true}, client(1, "Zone 1", 33.61, -111.93))
	ctx := context.Background()

	zone, bins := "Zone 9", 3
	tests := []domain.ClientPatch{
		{Zone: &zone},
		{TrashBins: &bins},
		{RecycleBins: &bins},
	}
	for _, p := range tests {
		if _, err := f.registry.Update(ctx, 1, p); !errors.Is(err, domain.ErrInvalidUpdate) {
			t.Fatalf("patch %+v: err = %v, want ErrInvalidUpdate", p, err)
		}
	}

	c, _ := f.registry.Get(ctx, 1)
	if !c.FirstService || c.Zone != "Zone 1" || c.TrashBins != 1 {
		t.Fatalf("rejected updates mutated client: %+v", c)
	}

	ok := "Zone 2"
	if _, err := f.registry.Update(ctx, 1, domain.ClientPatch{Zone: &ok}); err != nil {
		t.Fatalf("valid strict update failed: %v", err)
	}
}

func TestRegistryRecomputeBilling(t *testing.T) {
	f := newFixture(t, RegistryOptions{RecomputeBilling: true}, client(1, "Zone 1", 33.61, -111.93))

	two := 2
	got, err := f.registry.Update(context.Background(), 1, domain.ClientPatch{TrashBins: &two})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Actions != 6 || got.MonthlyCost != 80 {
		t.Fatalf("billing = actions %d cost %d, want 6/80", got.Actions, got.MonthlyCost)
	}
}

func TestZoneAssignment(t *testing.T) {
	f := newFixture(t, RegistryOptions{})
	ctx := context.Background()

	a, err := f.zones.Assign(ctx, "Zone 3", "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Zone != "Zone 3" || a.Worker != "Alice" {
		t.Fatalf("assignment = %+v", a)
	}

	before, _ := f.zones.ListZones(ctx)
	if _, err := f.zones.Assign(ctx, "Zone 9", "Bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	after, _ := f.zones.ListZones(ctx)
	if len(before) != len(after) {
		t.Fatalf("zone set changed: %v -> %v", before, after)
	}
	for k, v := range before {
		if after[k] != v {
			t.Fatalf("zone %q changed from %q to %q", k, v, after[k])
		}
	}
	if after["Zone 1"] != "Alice" || after["Zone 3"] != "Alice" {
		t.Fatalf("worker should hold both zones: %v", after)
	}
}

func TestRouteOrdersByDistanceFromDepot(t *testing.T) {
	f := newFixture(t, RegistryOptions{},
		client(2, "Zone 1", 33.80, -111.90),
		client(1, "Zone 1", 33.61, -111.93),
		client(3, "Zone 2", 33.605, -111.935),
	)

	route, err := f.planner.Route(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(route); !equalInts(got, []int{1, 2}) {
		t.Fatalf("route = %v, want [1 2]", got)
	}

	for i := 1; i < len(route); i++ {
		if geo.Miles(depot, route[i-1].Location) > geo.Miles(depot, route[i].Location) {
			t.Fatalf("route not sorted at %d", i)
		}
	}
}

func TestRouteFollowsReassignment(t *testing.T) {
	f := newFixture(t, RegistryOptions{},
		client(1, "Zone 1", 33.61, -111.93),
		client(2, "Zone 3", 33.62, -111.92),
	)
	ctx := context.Background()

	if _, err := f.zones.Assign(ctx, "Zone 1", "Bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alice, _ := f.planner.Route(ctx, "Alice")
	bob, _ := f.planner.Route(ctx, "Bob")
	if len(alice) != 0 {
		t.Fatalf("alice route = %v, want empty", ids(alice))
	}
	if got := ids(bob); !equalInts(got, []int{1}) {
		t.Fatalf("bob route = %v, want [1]", got)
	}
}

func TestRouteUnknownWorkerIsEmpty(t *testing.T) {
	f := newFixture(t, RegistryOptions{}, client(1, "Zone 3", 33.61, -111.93))

	for _, w := range []string{"Nobody", domain.Unassigned + "x", ""} {
		route, err := f.planner.Route(context.Background(), w)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route == nil || len(route) != 0 {
			t.Fatalf("worker %q: route = %v, want empty non-nil", w, route)
		}
	}
}

func TestBuildRouteTiesBreakByID(t *testing.T) {
	clients := []domain.Client{
		client(5, "Zone 1", 33.61, -111.93),
		client(2, "Zone 1", 33.61, -111.93),
		client(9, "Zone 1", 33.61, -111.93),
	}
	zones := map[string]string{"Zone 1": "Alice"}

	route, err := BuildRoute(context.Background(), "Alice", depot, clients, zones, geo.Geodesic{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(route); !equalInts(got, []int{2, 5, 9}) {
		t.Fatalf("route = %v, want [2 5 9]", got)
	}
}

func TestBuildRouteOrdersAroundInvalidCoordinates(t *testing.T) {
	clients := []domain.Client{
		client(1, "Zone 1", 33.80, -111.90),
		client(2, "Zone 1", 200, -111.93),
		client(3, "Zone 1", 33.61, -111.93),
	}
	zones := map[string]string{"Zone 1": "Alice"}

	route, err := BuildRoute(context.Background(), "Alice", depot, clients, zones, nanProvider{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(route); !equalInts(got, []int{2, 3, 1}) {
		t.Fatalf("route = %v, want [2 3 1]", got)
	}
}

func TestBuildRouteTiesBreakOnExtremeIDs(t *testing.T) {
	clients := []domain.Client{
		client(math.MaxInt, "Zone 1", 33.61, -111.93),
		client(math.MinInt, "Zone 1", 33.61, -111.93),
		client(0, "Zone 1", 33.61, -111.93),
	}
	zones := map[string]string{"Zone 1": "Alice"}

	route, err := BuildRoute(context.Background(), "Alice", depot, clients, zones, geo.Geodesic{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(route); !equalInts(got, []int{math.MinInt, 0, math.MaxInt}) {
		t.Fatalf("route = %v, want ascending ids", got)
	}
}

func TestBuildRouteSkipsClientsInUnknownZones(t *testing.T) {
	clients := []domain.Client{
		client(1, "Zone 1", 33.61, -111.93),
		client(2, "Zone 42", 33.61, -111.93),
	}
	zones := map[string]string{"Zone 1": "Alice"}

	route, err := BuildRoute(context.Background(), "Alice", depot, clients, zones, geo.Geodesic{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(route); !equalInts(got, []int{1}) {
		t.Fatalf("route = %v, want [1]", got)
	}
}

type countingProvider struct {
	calls int
	seen  int
}

func (p *countingProvider) Distances(ctx context.Context, origin domain.Coordinates, dests []domain.Coordinates) ([]float64, error) {
	p.calls++
	p.seen += len(dests)
	return geo.Geodesic{}.Distances(ctx, origin, dests)
}

// nanProvider reports NaN for latitudes outside [-90, 90], as the geodesic
// solver does.
type nanProvider struct{}

func (nanProvider) Distances(ctx context.Context, origin domain.Coordinates, dests []domain.Coordinates) ([]float64, error) {
	out := make([]float64, len(dests))
	for i, d := range dests {
		if d.Lat < -90 || d.Lat > 90 {
			out[i] = math.NaN()
			continue
		}
		out[i] = geo.Miles(origin, d)
	}
	return out, nil
}

type failingProvider struct{}

func (failingProvider) Distances(context.Context, domain.Coordinates, []domain.Coordinates) ([]float64, error) {
	return nil, errors.New("boom")
}

func TestBuildRouteProviderError(t *testing.T) {
	clients := []domain.Client{client(1, "Zone 1", 33.61, -111.93)}
	zones := map[string]string{"Zone 1": "Alice"}

	if _, err := BuildRoute(context.Background(), "Alice", depot, clients, zones, failingProvider{}); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestCachedDistanceMatchesDirect(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedDistance(inner, cache.NewMemoryDistanceCache(0))
	ctx := context.Background()

	pts := []domain.Coordinates{
		{Lat: 33.80, Lng: -111.90},
		{Lat: 33.61, Lng: -111.93},
	}

	first, err := cached.Distances(ctx, depot, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.Distances(ctx, depot, append(pts, domain.Coordinates{Lat: 33.7, Lng: -111.91}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	direct, _ := geo.Geodesic{}.Distances(ctx, depot, pts)
	for i := range pts {
		if first[i] != direct[i] || second[i] != direct[i] {
			t.Fatalf("cached distance %d differs: %v %v vs %v", i, first[i], second[i], direct[i])
		}
	}
	if inner.calls != 2 || inner.seen != 3 {
		t.Fatalf("provider calls=%d seen=%d, want 2 calls over 3 points", inner.calls, inner.seen)
	}
}

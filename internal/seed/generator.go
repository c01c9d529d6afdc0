// Package seed produces demo clients and zones for local runs and tests.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

// Default service area: Scottsdale, AZ.
var DefaultCenter = domain.Coordinates{Lat: 33.6, Lng: -111.92}

const DefaultJitter = 0.01

// DefaultZones is the demo zone set and its starting assignments.
func DefaultZones() []domain.Zone {
	return []domain.Zone{
		{Name: "Zone 1", Worker: "Worker 1"},
		{Name: "Zone 2", Worker: "Worker 2"},
		{Name: "Zone 3", Worker: domain.Unassigned},
	}
}

// Generator draws reproducible synthetic clients from an explicit seed.
type Generator struct {
	rng    *rand.Rand
	Center domain.Coordinates
	Jitter float64
	Zones  []domain.Zone
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Center: DefaultCenter,
		Jitter: DefaultJitter,
		Zones:  DefaultZones(),
	}
}

// Clients returns n clients with ids 0..n-1, uniformly placed within
// Jitter degrees of Center, in a random zone, with 1 or 2 bins of each kind.
func (g *Generator) Clients(n int) []domain.Client {
	out := make([]domain.Client, 0, n)
	for i := 0; i < n; i++ {
		trash := 1 + g.rng.IntN(2)
		recycle := 1 + g.rng.IntN(2)
		loc := domain.Coordinates{
			Lat: g.Center.Lat + g.uniform(),
			Lng: g.Center.Lng + g.uniform(),
		}
		zone := g.Zones[g.rng.IntN(len(g.Zones))].Name

		out = append(out, *domain.NewClient(i, loc, zone, trash, recycle))
	}
	return out
}

func (g *Generator) uniform() float64 {
	return (g.rng.Float64()*2 - 1) * g.Jitter
}

type ClientSeed struct {
	ID          int     `json:"id"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Zone        string  `json:"zone"`
	TrashBins   int     `json:"trash_bins"`
	RecycleBins int     `json:"recycle_bins"`
}

// LoadClients reads a JSON array of client seeds. Billing and service state
// are derived as for newly created clients.
func LoadClients(path string) ([]domain.Client, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load clients: read %q: %w", path, err)
	}

	var data []ClientSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load clients: parse json: %w", err)
	}

	seen := make(map[int]struct{}, len(data))
	out := make([]domain.Client, 0, len(data))
	for i, item := range data {
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("load clients: duplicate id %d at index %d", item.ID, i)
		}
		seen[item.ID] = struct{}{}

		zone := strings.TrimSpace(item.Zone)
		if zone == "" {
			return nil, fmt.Errorf("load clients: item at index %d: zone cannot be empty", i)
		}
		if !domain.ValidBinCount(item.TrashBins) || !domain.ValidBinCount(item.RecycleBins) {
			return nil, fmt.Errorf("load clients: item at index %d: bin counts must be 1 or 2", i)
		}

		loc := domain.Coordinates{Lat: item.Lat, Lng: item.Lng}
		if !loc.Valid() {
			return nil, fmt.Errorf("load clients: item at index %d: coordinate %v out of range", i, loc)
		}
		out = append(out, *domain.NewClient(item.ID, loc, zone, item.TrashBins, item.RecycleBins))
	}

	return out, nil
}

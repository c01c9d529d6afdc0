package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

// In-process implementation of the ZoneRepository port.
type ZoneRepository struct {
	mu    sync.RWMutex
	zones map[string]string
}

func NewZoneRepository(zones []domain.Zone) *ZoneRepository {
	m := make(map[string]string, len(zones))
	for _, z := range zones {
		m[z.Name] = z.Worker
	}
	return &ZoneRepository{zones: m}
}

func (r *ZoneRepository) ListZones(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.zones), nil
}

func (r *ZoneRepository) AssignWorker(ctx context.Context, zone, worker string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[zone]; !ok {
		return fmt.Errorf("assign zone %q: %w", zone, domain.ErrNotFound)
	}
	r.zones[zone] = worker
	return nil
}

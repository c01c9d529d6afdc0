package services

import (
	"context"
	"fmt"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/obs"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
)

// ZoneAssignment stores which worker services each zone.
// Any worker string is accepted and a worker may hold several zones.
type ZoneAssignment struct {
	Repo ports.ZoneRepository
}

func NewZoneAssignment(repo ports.ZoneRepository) *ZoneAssignment {
	return &ZoneAssignment{Repo: repo}
}

func (z *ZoneAssignment) ListZones(ctx context.Context) (map[string]string, error) {
	zones, err := z.Repo.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("zone assignment: %w", err)
	}
	return zones, nil
}

// Assign overwrites the worker of zone. Unknown zones return domain.ErrNotFound.
func (z *ZoneAssignment) Assign(ctx context.Context, zone, worker string) (domain.Assignment, error) {
	if err := z.Repo.AssignWorker(ctx, zone, worker); err != nil {
		obs.ZoneAssignments.WithLabelValues(updateOutcome(err)).Inc()
		return domain.Assignment{}, fmt.Errorf("zone assignment: %w", err)
	}

	obs.ZoneAssignments.WithLabelValues("ok").Inc()
	return domain.Assignment{Zone: zone, Worker: worker}, nil
}

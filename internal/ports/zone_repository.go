package ports

import "context"

// Port: the zone -> worker mapping.
type ZoneRepository interface {
	// Snapshot of every zone and its worker.
	ListZones(ctx context.Context) (map[string]string, error)
	// Set the worker of an existing zone; domain.ErrNotFound if the zone is unknown.
	AssignWorker(ctx context.Context, zone, worker string) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/obs"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
)

type RegistryOptions struct {
	// StrictZones rejects patches naming an unknown zone or a bin count outside {1, 2}.
	StrictZones bool
	// RecomputeBilling refreshes actions and monthly cost when bin counts change.
	// When off, billing keeps its creation-time values and the drift is logged.
	RecomputeBilling bool
}

// ClientRegistry owns client lookups and the update state machine.
type ClientRegistry struct {
	Repo    ports.ClientRepository
	Zones   ports.ZoneRepository
	Options RegistryOptions
}

func NewClientRegistry(repo ports.ClientRepository, zones ports.ZoneRepository, opts RegistryOptions) *ClientRegistry {
	return &ClientRegistry{Repo: repo, Zones: zones, Options: opts}
}

func (r *ClientRegistry) Get(ctx context.Context, id int) (domain.Client, error) {
	c, err := r.Repo.GetClient(ctx, id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("client registry: %w", err)
	}
	return c, nil
}

func (r *ClientRegistry) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := r.Repo.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("client registry: %w", err)
	}
	return clients, nil
}

// Update merges patch into the client and ends its first-service state.
// Unknown ids return domain.ErrNotFound without touching any record.
func (r *ClientRegistry) Update(ctx context.Context, id int, patch domain.ClientPatch) (_ domain.Client, err error) {
	defer obs.Time(ctx, "clients.update")(&err)
	defer func() { obs.ClientUpdates.WithLabelValues(updateOutcome(err)).Inc() }()

	var knownZones map[string]string
	if r.Options.StrictZones && patch.Zone != nil {
		knownZones, err = r.Zones.ListZones(ctx)
		if err != nil {
			return domain.Client{}, fmt.Errorf("client registry: update %d: load zones: %w", id, err)
		}
	}

	updated, err := r.Repo.UpdateClient(ctx, id, func(c *domain.Client) error {
		if r.Options.StrictZones {
			if err := validatePatch(patch, knownZones); err != nil {
				return err
			}
		}

		c.Apply(patch)

		if patch.ChangesBins() {
			if r.Options.RecomputeBilling {
				c.RecomputeBilling()
			} else if c.BillingStale() {
				log.Printf(
					"req_id=%s op=clients.update client_id=%d warn=stale_billing trash_bins=%d recycle_bins=%d actions=%d monthly_cost=%d",
					obs.RequestID(ctx), c.ID, c.TrashBins, c.RecycleBins, c.Actions, c.MonthlyCost,
				)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Client{}, fmt.Errorf("client registry: %w", err)
	}

	return updated, nil
}

func validatePatch(p domain.ClientPatch, zones map[string]string) error {
	if p.Zone != nil {
		if _, ok := zones[*p.Zone]; !ok {
			return fmt.Errorf("zone %q does not exist: %w", *p.Zone, domain.ErrInvalidUpdate)
		}
	}
	if p.TrashBins != nil && !domain.ValidBinCount(*p.TrashBins) {
		return fmt.Errorf("trash_bins must be 1 or 2, got %d: %w", *p.TrashBins, domain.ErrInvalidUpdate)
	}
	if p.RecycleBins != nil && !domain.ValidBinCount(*p.RecycleBins) {
		return fmt.Errorf("recycle_bins must be 1 or 2, got %d: %w", *p.RecycleBins, domain.ErrInvalidUpdate)
	}
	return nil
}

func updateOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidUpdate):
		return "invalid"
	default:
		return "error"
	}
}

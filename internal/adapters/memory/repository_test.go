package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

func seedClients() []domain.Client {
	return []domain.Client{
		*domain.NewClient(3, domain.Coordinates{Lat: 33.61, Lng: -111.93}, "Zone 1", 1, 1),
		*domain.NewClient(1, domain.Coordinates{Lat: 33.80, Lng: -111.90}, "Zone 2", 2, 1),
	}
}

func TestClientRepositoryKeepsInsertionOrder(t *testing.T) {
	repo, err := NewClientRepository(seedClients())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.ListClients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("list order = %+v, want ids [3 1]", got)
	}

	// Snapshots are copies.
	got[0].Zone = "tampered"
	c, _ := repo.GetClient(context.Background(), 3)
	if c.Zone != "Zone 1" {
		t.Fatalf("snapshot mutation leaked into store: zone=%q", c.Zone)
	}
}

func TestClientRepositoryRejectsDuplicateIDs(t *testing.T) {
	c := *domain.NewClient(1, domain.Coordinates{}, "Zone 1", 1, 1)
	if _, err := NewClientRepository([]domain.Client{c, c}); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestClientRepositoryUpdateNotFound(t *testing.T) {
	repo, _ := NewClientRepository(seedClients())

	called := false
	_, err := repo.UpdateClient(context.Background(), 99, func(*domain.Client) error {
		called = true
		return nil
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if called {
		t.Fatal("mutate should not run for unknown ids")
	}
}

func TestClientRepositoryRejectedMutationIsDiscarded(t *testing.T) {
	repo, _ := NewClientRepository(seedClients())

	_, err := repo.UpdateClient(context.Background(), 3, func(c *domain.Client) error {
		c.Zone = "Zone 9"
		return domain.ErrInvalidUpdate
	})
	if !errors.Is(err, domain.ErrInvalidUpdate) {
		t.Fatalf("err = %v, want ErrInvalidUpdate", err)
	}

	c, _ := repo.GetClient(context.Background(), 3)
	if c.Zone != "Zone 1" {
		t.Fatalf("zone = %q, rejected mutation should not be stored", c.Zone)
	}
}

func TestClientRepositoryConcurrentUpdates(t *testing.T) {
	repo, _ := NewClientRepository(seedClients())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.UpdateClient(context.Background(), 3, func(c *domain.Client) error {
				c.Instructions += "x"
				return nil
			})
		}()
	}
	wg.Wait()

	c, _ := repo.GetClient(context.Background(), 3)
	if len(c.Instructions) != n {
		t.Fatalf("lost updates: got %d appends, want %d", len(c.Instructions), n)
	}
}

func TestZoneRepositoryAssign(t *testing.T) {
	repo := NewZoneRepository([]domain.Zone{
		{Name: "Zone 1", Worker: "Worker 1"},
		{Name: "Zone 2", Worker: domain.Unassigned},
	})
	ctx := context.Background()

	if err := repo.AssignWorker(ctx, "Zone 2", "Worker 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.AssignWorker(ctx, "Zone 9", "Bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	zones, _ := repo.ListZones(ctx)
	if len(zones) != 2 || zones["Zone 1"] != "Worker 1" || zones["Zone 2"] != "Worker 1" {
		t.Fatalf("zones = %v", zones)
	}

	zones["Zone 1"] = "tampered"
	again, _ := repo.ListZones(ctx)
	if again["Zone 1"] != "Worker 1" {
		t.Fatal("snapshot mutation leaked into store")
	}
}

package ports

import (
	"context"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

// Port: the authoritative store of Client records.
type ClientRepository interface {
	// Retrieve all clients in storage order.
	ListClients(ctx context.Context) ([]domain.Client, error)
	// Retrieve one client; domain.ErrNotFound if the id is unknown.
	GetClient(ctx context.Context, id int) (domain.Client, error)
	// Apply mutate to the stored client atomically with respect to other
	// updates of the same store. If mutate returns an error nothing is written.
	UpdateClient(ctx context.Context, id int, mutate func(*domain.Client) error) (domain.Client, error)
}

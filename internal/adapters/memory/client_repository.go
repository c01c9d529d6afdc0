package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

// In-process implementation of the ClientRepository port.
// Reads share the lock; each update holds it exclusively for its
// read-modify-write so concurrent updates to one client cannot be lost.
type ClientRepository struct {
	mu      sync.RWMutex
	order   []int
	clients map[int]*domain.Client
}

// NewClientRepository stores copies of clients in the given order.
// Duplicate ids are rejected.
func NewClientRepository(clients []domain.Client) (*ClientRepository, error) {
	r := &ClientRepository{
		order:   make([]int, 0, len(clients)),
		clients: make(map[int]*domain.Client, len(clients)),
	}
	for _, c := range clients {
		if _, ok := r.clients[c.ID]; ok {
			return nil, fmt.Errorf("memory client repository: duplicate client id %d", c.ID)
		}
		c := c
		r.clients[c.ID] = &c
		r.order = append(r.order, c.ID)
	}
	return r, nil
}

func (r *ClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.clients[id])
	}
	return out, nil
}

func (r *ClientRepository) GetClient(ctx context.Context, id int) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return domain.Client{}, fmt.Errorf("get client %d: %w", id, domain.ErrNotFound)
	}
	return *c, nil
}

func (r *ClientRepository) UpdateClient(
	ctx context.Context,
	id int,
	mutate func(*domain.Client) error,
) (domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return domain.Client{}, fmt.Errorf("update client %d: %w", id, domain.ErrNotFound)
	}

	// Mutate a copy so a rejected update leaves the record untouched.
	next := *c
	if err := mutate(&next); err != nil {
		return domain.Client{}, fmt.Errorf("update client %d: %w", id, err)
	}
	*c = next

	return next, nil
}

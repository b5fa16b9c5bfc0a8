package customer

import (
	"context"
	"sync"

	"retail-customers/internal/domain"
)

// Memory keeps customers in process memory. Lists come back in insertion order.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Customer
	order []string
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]*domain.Customer)}
}

func (r *Memory) Save(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := c.ID().String()
	if _, exists := r.byID[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = c.Clone()
	return nil
}

func (r *Memory) FindByID(_ context.Context, id domain.CustomerID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id.String()]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *Memory) FindAll(_ context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *Memory) Update(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := c.ID().String()
	if _, ok := r.byID[id]; !ok {
		return notFound(c.ID())
	}
	r.byID[id] = c.Clone()
	return nil
}

func (r *Memory) Delete(_ context.Context, id domain.CustomerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := id.String()
	if _, ok := r.byID[key]; !ok {
		return notFound(id)
	}
	delete(r.byID, key)
	for i, v := range r.order {
		if v == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Memory) FindAllSortedByCredit(_ context.Context, ascending bool) ([]*domain.Customer, error) {
	r.mu.RLock()
	out := r.snapshot()
	r.mu.RUnlock()
	SortByCredit(out, ascending)
	return out, nil
}

// Clear removes every customer.
func (r *Memory) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*domain.Customer)
	r.order = nil
}

// Count reports how many customers are stored.
func (r *Memory) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *Memory) snapshot() []*domain.Customer {
	out := make([]*domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

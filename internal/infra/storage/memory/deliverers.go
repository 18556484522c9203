package memory

import (
	"context"
	"sync"

	"motorent/internal/domain/deliverer"
)

// DelivererRepository keeps deliverers in process memory. Used for local
// development and tests when Mongo is not configured.
type DelivererRepository struct {
	mu    sync.RWMutex
	items map[deliverer.ID]deliverer.Deliverer
}

func NewDelivererRepository() *DelivererRepository {
	return &DelivererRepository{items: map[deliverer.ID]deliverer.Deliverer{}}
}

func (r *DelivererRepository) ByID(_ context.Context, id deliverer.ID) (*deliverer.Deliverer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, deliverer.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (r *DelivererRepository) ByCNHNumber(_ context.Context, cnh string) (*deliverer.Deliverer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if d.CNHNumber == cnh {
			copy := d
			return &copy, nil
		}
	}
	return nil, deliverer.ErrNotFound
}

func (r *DelivererRepository) ByCNPJ(_ context.Context, cnpj string) (*deliverer.Deliverer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if d.CNPJ == cnpj {
			copy := d
			return &copy, nil
		}
	}
	return nil, deliverer.ErrNotFound
}

func (r *DelivererRepository) Save(_ context.Context, d *deliverer.Deliverer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.items {
		if id == d.ID {
			continue
		}
		if existing.CNHNumber == d.CNHNumber {
			return deliverer.ErrCNHAlreadyUsed
		}
		if existing.CNPJ == d.CNPJ {
			return deliverer.ErrCNPJAlreadyUsed
		}
	}
	r.items[d.ID] = *d
	return nil
}

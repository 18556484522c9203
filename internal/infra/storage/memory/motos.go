package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"motorent/internal/domain/moto"
)

type MotoRepository struct {
	mu    sync.RWMutex
	items map[moto.ID]moto.Motorcycle
}

func NewMotoRepository() *MotoRepository {
	return &MotoRepository{items: map[moto.ID]moto.Motorcycle{}}
}

func (r *MotoRepository) ByID(_ context.Context, id moto.ID) (*moto.Motorcycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return nil, moto.ErrNotFound
	}
	copy := m
	return &copy, nil
}

func (r *MotoRepository) ByPlate(_ context.Context, plate string) (*moto.Motorcycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plate = moto.NormalizePlate(plate)
	for _, m := range r.items {
		if m.Plate == plate {
			copy := m
			return &copy, nil
		}
	}
	return nil, moto.ErrNotFound
}

func (r *MotoRepository) Search(_ context.Context, platePrefix string) ([]*moto.Motorcycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix := moto.NormalizePlate(platePrefix)
	out := make([]*moto.Motorcycle, 0, len(r.items))
	for _, m := range r.items {
		if prefix != "" && !strings.HasPrefix(m.Plate, prefix) {
			continue
		}
		copy := m
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

func (r *MotoRepository) Save(_ context.Context, m *moto.Motorcycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.items {
		if id != m.ID && existing.Plate == m.Plate {
			return moto.ErrPlateAlreadyUsed
		}
	}
	r.items[m.ID] = *m
	return nil
}

func (r *MotoRepository) Delete(_ context.Context, id moto.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return moto.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

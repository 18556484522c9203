package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"motorent/internal/domain/deliverer"
	"motorent/internal/domain/moto"
	"motorent/internal/domain/rent"
)

var ErrConcurrentUpdate = errors.New("memory: concurrent update detected")

type RentRepository struct {
	mu    sync.RWMutex
	items map[rent.ID]rent.Rent
}

func NewRentRepository() *RentRepository {
	return &RentRepository{items: map[rent.ID]rent.Rent{}}
}

func (r *RentRepository) Create(_ context.Context, rn *rent.Rent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rn.ID]; ok {
		return ErrConcurrentUpdate
	}
	rn.Version = 1
	r.items[rn.ID] = *rn
	return nil
}

func (r *RentRepository) Update(_ context.Context, rn *rent.Rent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[rn.ID]
	if !ok || stored.Version != rn.Version {
		return ErrConcurrentUpdate
	}
	rn.Version++
	r.items[rn.ID] = *rn
	return nil
}

func (r *RentRepository) ByID(_ context.Context, id rent.ID) (*rent.Rent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rn, ok := r.items[id]
	if !ok {
		return nil, rent.ErrNotFound
	}
	copy := rn
	return &copy, nil
}

func (r *RentRepository) Filter(_ context.Context, filter rent.Filter, page rent.Page) ([]*rent.Rent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]rent.Rent, 0, len(r.items))
	for _, rn := range r.items {
		if filter.DelivererID != "" && rn.DelivererID != filter.DelivererID {
			continue
		}
		if filter.Plate != "" && rn.Plate != moto.NormalizePlate(filter.Plate) {
			continue
		}
		if filter.Status != "" && rn.Status != filter.Status {
			continue
		}
		matched = append(matched, rn)
	}
	// newest first, matching the Mongo sort
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	n := page.Normalized()
	offset := page.Offset()
	if offset >= len(matched) {
		return []*rent.Rent{}, nil
	}
	end := offset + n.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]*rent.Rent, 0, end-offset)
	for i := offset; i < end; i++ {
		copy := matched[i]
		out = append(out, &copy)
	}
	return out, nil
}

func (r *RentRepository) FindRentedByPlate(_ context.Context, delivererID deliverer.ID, plate string) (*rent.Rent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plate = moto.NormalizePlate(plate)
	for _, rn := range r.items {
		if rn.DelivererID == delivererID && rn.Plate == plate && rn.Status == rent.StatusRented {
			copy := rn
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *RentRepository) CountByMoto(_ context.Context, motoID moto.ID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, rn := range r.items {
		if rn.MotoID == motoID {
			count++
		}
	}
	return count, nil
}

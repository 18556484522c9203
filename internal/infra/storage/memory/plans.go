package memory

import (
	"context"
	"sort"
	"sync"

	"motorent/internal/domain/plan"
)

// PlanRepository serves the pricing catalog from memory, preloaded with the
// default tiers.
type PlanRepository struct {
	mu    sync.RWMutex
	plans map[int]plan.RentPlan
}

func NewPlanRepository() *PlanRepository {
	r := &PlanRepository{plans: map[int]plan.RentPlan{}}
	for _, p := range plan.DefaultCatalog() {
		r.plans[p.Days] = p
	}
	return r
}

func (r *PlanRepository) FindByDays(_ context.Context, days int) (*plan.RentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[days]
	if !ok {
		return nil, nil
	}
	copy := p
	return &copy, nil
}

func (r *PlanRepository) All(_ context.Context) ([]plan.RentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]plan.RentPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out, nil
}

package rent

import (
	"context"
	"log/slog"
	"time"

	"motorent/internal/app/outbox"
	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	"motorent/internal/domain/pricing"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
	"motorent/internal/domain/shared/fault"
	"motorent/internal/domain/shared/money"
)

// BudgetService settles the actual return cost of an active rent through the
// injected payment calculation strategy.
type BudgetService struct {
	Rents    domainrent.Repository
	Strategy pricing.Strategy
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Clock    clock.Clock
	Logger   *slog.Logger
}

// ReturnBudget combines the strategy quote with the rent it applies to.
type ReturnBudget struct {
	TotalCost     money.Money
	TotalDaysUsed int
	Rent          *domainrent.Rent
}

// ExpectedReturn quotes the cost of delivering the motorcycle on the given
// date without mutating the rent.
func (s *BudgetService) ExpectedReturn(ctx context.Context, delivererID domaindeliverer.ID, plate string, deliveryDate time.Time) (*ReturnBudget, error) {
	r, quote, err := s.quote(ctx, delivererID, plate, deliveryDate)
	if err != nil {
		return nil, err
	}
	return &ReturnBudget{TotalCost: quote.TotalCost, TotalDaysUsed: quote.TotalDaysUsed, Rent: r}, nil
}

// Return settles the rent: the strategy quote becomes the actual cost and the
// rent transitions to RETURNED.
func (s *BudgetService) Return(ctx context.Context, delivererID domaindeliverer.ID, plate string, deliveryDate time.Time) (*ReturnBudget, error) {
	r, quote, err := s.quote(ctx, delivererID, plate, deliveryDate)
	if err != nil {
		return nil, err
	}
	if err := r.CompleteReturn(quote.TotalCost, deliveryDate.UTC(), s.now()); err != nil {
		return nil, err
	}
	if err := s.Rents.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()

	if s.Logger != nil {
		s.Logger.Info("rent returned", "rent_id", r.ID, "plate", r.Plate, "days_used", quote.TotalDaysUsed, "total_cost", quote.TotalCost)
	}
	return &ReturnBudget{TotalCost: quote.TotalCost, TotalDaysUsed: quote.TotalDaysUsed, Rent: r}, nil
}

func (s *BudgetService) quote(ctx context.Context, delivererID domaindeliverer.ID, plate string, deliveryDate time.Time) (*domainrent.Rent, pricing.ReturnQuote, error) {
	r, err := s.Rents.FindRentedByPlate(ctx, delivererID, domainmoto.NormalizePlate(plate))
	if err != nil {
		return nil, pricing.ReturnQuote{}, err
	}
	if r == nil {
		return nil, pricing.ReturnQuote{}, fault.NotFound("no active rent for the deliverer and plate")
	}
	quote, err := s.Strategy.CalculateCost(ctx, r, deliveryDate.UTC())
	if err != nil {
		return nil, pricing.ReturnQuote{}, err
	}
	return r, quote, nil
}

func (s *BudgetService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

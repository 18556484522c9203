package rent

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"motorent/internal/app/outbox"
	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainplan "motorent/internal/domain/plan"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
	"motorent/internal/domain/shared/fault"
)

// Service creates rents: it authorizes the deliverer, validates the rental
// period, selects the plan by exact day count and persists the forecast.
type Service struct {
	Deliverers domaindeliverer.Repository
	Motos      domainmoto.Repository
	Catalog    domainplan.Repository
	Rents      domainrent.Repository
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      clock.Clock
	Logger     *slog.Logger
}

type RentingParams struct {
	DelivererID domaindeliverer.ID
	MotoID      domainmoto.ID
	StartDate   time.Time
	EndDate     time.Time
}

func (s *Service) Renting(ctx context.Context, params RentingParams) (*domainrent.Rent, error) {
	d, err := s.Deliverers.ByID(ctx, params.DelivererID)
	if err != nil {
		return nil, err
	}
	if !d.CanRentMotorcycle() {
		return nil, fault.BadRequest("deliverer cnh type does not allow motorcycle rental")
	}

	today := clock.DateOf(s.now())
	start := clock.DateOf(params.StartDate)
	if !start.After(today) {
		return nil, fault.BadRequest("rental start date must be after the current date")
	}
	end := clock.DateOf(params.EndDate)
	if end.Before(start) {
		return nil, fault.BadRequest("rental end date must not precede the start date")
	}

	days := clock.WholeDaysBetween(start, end)
	p, err := s.Catalog.FindByDays(ctx, days)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fault.BadRequest("no rental plan for the requested period")
	}

	m, err := s.Motos.ByID(ctx, params.MotoID)
	if err != nil {
		return nil, err
	}

	r, err := domainrent.NewRent(domainrent.CreateParams{
		ID:          domainrent.ID(uuid.NewString()),
		DelivererID: d.ID,
		MotoID:      m.ID,
		Plate:       m.Plate,
		StartDate:   start,
		EndDate:     end,
		Plan:        *p,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Rents.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()

	if s.Logger != nil {
		s.Logger.Info("rent created", "rent_id", r.ID, "deliverer_id", d.ID, "plate", r.Plate, "days", r.Plan.Days, "total_cost", r.TotalCost)
	}
	return r, nil
}

// Plans lists the catalog tiers available for renting.
func (s *Service) Plans(ctx context.Context) ([]domainplan.RentPlan, error) {
	return s.Catalog.All(ctx)
}

// Paginate delegates filtering and pagination verbatim to the repository.
func (s *Service) Paginate(ctx context.Context, filter domainrent.Filter, page domainrent.Page) ([]*domainrent.Rent, error) {
	return s.Rents.Filter(ctx, filter, page)
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

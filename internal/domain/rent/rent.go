package rent

import (
	"context"
	"errors"
	"time"

	"motorent/internal/domain/deliverer"
	"motorent/internal/domain/moto"
	"motorent/internal/domain/plan"
	"motorent/internal/domain/shared/events"
	"motorent/internal/domain/shared/money"
)

var (
	ErrIDRequired        = errors.New("rent: id is required")
	ErrDelivererRequired = errors.New("rent: deliverer is required")
	ErrPlateRequired     = errors.New("rent: motorcycle plate is required")
	ErrInvalidPeriod     = errors.New("rent: end date must not precede start date")
	ErrInvalidState      = errors.New("rent: invalid status transition")
	ErrNotFound          = errors.New("rent: not found")
)

type ID string

type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusRented     Status = "RENTED"
	StatusReturned   Status = "RETURNED"
	StatusCancelled  Status = "CANCELLED"
)

// Rent tracks a deliverer leasing a motorcycle for a planned period.
// The cost recorded at creation is the forecast from the plan; the actual
// cost is written back when the motorcycle is returned.
type Rent struct {
	ID               ID
	DelivererID      deliverer.ID
	MotoID           moto.ID
	Plate            string
	StartDate        time.Time
	EndDate          time.Time
	DeliveryForecast time.Time
	Plan             plan.RentPlan
	TotalCost        money.Money
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int64
	events.EventRecorder
}

// Filter narrows paginated rent queries. Zero values are ignored.
type Filter struct {
	DelivererID deliverer.ID
	Plate       string
	Status      Status
}

// Page addresses a slice of the result set (1-based page index).
type Page struct {
	Page    int
	PerPage int
}

func (p Page) Normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 20
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.PerPage
}

type Repository interface {
	Create(ctx context.Context, r *Rent) error
	Update(ctx context.Context, r *Rent) error
	ByID(ctx context.Context, id ID) (*Rent, error)
	// Filter returns the page of rents matching the filter; an empty slice is
	// a valid result.
	Filter(ctx context.Context, filter Filter, page Page) ([]*Rent, error)
	// FindRentedByPlate locates the currently active rent for the deliverer
	// and plate. A nil rent with a nil error means none is active.
	FindRentedByPlate(ctx context.Context, delivererID deliverer.ID, plate string) (*Rent, error)
	// CountByMoto reports how many rents reference the motorcycle; guards
	// fleet removals.
	CountByMoto(ctx context.Context, motoID moto.ID) (int64, error)
}

type CreateParams struct {
	ID          ID
	DelivererID deliverer.ID
	MotoID      moto.ID
	Plate       string
	StartDate   time.Time
	EndDate     time.Time
	Plan        plan.RentPlan
	CreatedAt   time.Time
}

// NewRent builds a PROCESSING rent with the forecast cost taken from the plan.
func NewRent(params CreateParams) (*Rent, error) {
	if params.ID == "" {
		return nil, ErrIDRequired
	}
	if params.DelivererID == "" {
		return nil, ErrDelivererRequired
	}
	plate := moto.NormalizePlate(params.Plate)
	if plate == "" {
		return nil, ErrPlateRequired
	}
	start := params.StartDate.UTC()
	end := params.EndDate.UTC()
	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}
	if params.Plan.Days <= 0 {
		return nil, plan.ErrInvalidDays
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	r := &Rent{
		ID:               params.ID,
		DelivererID:      params.DelivererID,
		MotoID:           params.MotoID,
		Plate:            plate,
		StartDate:        start,
		EndDate:          end,
		DeliveryForecast: end,
		Plan:             params.Plan,
		TotalCost:        params.Plan.Total(),
		Status:           StatusProcessing,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.Record(Requested{RentID: r.ID, DelivererID: r.DelivererID, Plate: r.Plate, Days: r.Plan.Days, TotalCost: r.TotalCost, At: now})
	return r, nil
}

// Activate moves a processed rent into the active period (pickup event).
func (r *Rent) Activate(now time.Time) error {
	if r.Status != StatusProcessing {
		return ErrInvalidState
	}
	r.Status = StatusRented
	r.touch(now)
	return nil
}

// CompleteReturn closes an active rent with the actual cost and end date.
func (r *Rent) CompleteReturn(actualCost money.Money, deliveredAt, now time.Time) error {
	if r.Status != StatusRented {
		return ErrInvalidState
	}
	r.Status = StatusReturned
	r.TotalCost = actualCost
	r.EndDate = deliveredAt.UTC()
	r.touch(now)
	r.Record(Returned{RentID: r.ID, DelivererID: r.DelivererID, Plate: r.Plate, TotalCost: actualCost, DeliveredAt: r.EndDate, At: r.UpdatedAt})
	return nil
}

// Cancel aborts a rent that never left processing.
func (r *Rent) Cancel(now time.Time) error {
	if r.Status != StatusProcessing {
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	r.touch(now)
	return nil
}

func (r *Rent) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	r.UpdatedAt = now.UTC()
}

package plan

import (
	"context"
	"errors"

	"motorent/internal/domain/shared/money"
)

var ErrInvalidDays = errors.New("plan: days must be positive")

// RentPlan is a fixed-duration pricing tier. Immutable once created.
type RentPlan struct {
	Days      int
	DailyRate money.Money
}

func New(days int, dailyRate money.Money) (RentPlan, error) {
	if days <= 0 {
		return RentPlan{}, ErrInvalidDays
	}
	return RentPlan{Days: days, DailyRate: dailyRate}, nil
}

// Total is the forecast cost for the full plan duration.
func (p RentPlan) Total() money.Money {
	return p.DailyRate.Multiply(int64(p.Days))
}

// Repository looks plans up by their exact day count. A nil plan with a nil
// error means no tier exists for the requested duration.
type Repository interface {
	FindByDays(ctx context.Context, days int) (*RentPlan, error)
	All(ctx context.Context) ([]RentPlan, error)
}

// DefaultCatalog returns the standard pricing tiers.
func DefaultCatalog() []RentPlan {
	return []RentPlan{
		{Days: 7, DailyRate: money.BRL(3000)},
		{Days: 15, DailyRate: money.BRL(2800)},
		{Days: 30, DailyRate: money.BRL(2200)},
		{Days: 45, DailyRate: money.BRL(2000)},
		{Days: 50, DailyRate: money.BRL(1800)},
	}
}

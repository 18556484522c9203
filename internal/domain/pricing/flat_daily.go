package pricing

import (
	"context"
	"time"

	"motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
)

// FlatDaily charges only the days actually used at the plan's daily rate.
// Used for promotional pricing; no early penalties, no late surcharge.
type FlatDaily struct{}

func (FlatDaily) CalculateCost(_ context.Context, r *rent.Rent, deliveryAt time.Time) (ReturnQuote, error) {
	if r == nil {
		return ReturnQuote{}, ErrRentRequired
	}
	daysUsed := clock.WholeDaysBetween(clock.DateOf(r.StartDate), clock.DateOf(deliveryAt))
	if daysUsed < 1 {
		daysUsed = 1
	}
	return ReturnQuote{
		TotalCost:     r.Plan.DailyRate.Multiply(int64(daysUsed)),
		TotalDaysUsed: daysUsed,
	}, nil
}

var _ Strategy = FlatDaily{}

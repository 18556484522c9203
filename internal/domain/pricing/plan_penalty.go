package pricing

import (
	"context"
	"time"

	"motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
	"motorent/internal/domain/shared/money"
)

// PlanPenalty settles returns against the contracted plan: early returns pay
// the used days plus a per-plan penalty over the unused days, late returns
// pay the full plan plus a flat daily surcharge.
type PlanPenalty struct {
	// LateDailyFee is charged per day past the forecast. Defaults to R$50.00.
	LateDailyFee money.Money
	// PenaltyPercentByDays overrides the early-return percentage per plan
	// duration. Defaults to 20% for 7-day and 40% for 15-day plans.
	PenaltyPercentByDays map[int]int64
}

func (s PlanPenalty) CalculateCost(_ context.Context, r *rent.Rent, deliveryAt time.Time) (ReturnQuote, error) {
	if r == nil {
		return ReturnQuote{}, ErrRentRequired
	}
	daysUsed := clock.WholeDaysBetween(clock.DateOf(r.StartDate), clock.DateOf(deliveryAt))
	if daysUsed < 0 {
		daysUsed = 0
	}

	planDays := r.Plan.Days
	rate := r.Plan.DailyRate

	switch {
	case daysUsed < planDays:
		used := rate.Multiply(int64(daysUsed))
		unused := rate.Multiply(int64(planDays - daysUsed))
		penalty := unused.PercentOf(s.penaltyPercent(planDays))
		total, err := used.Add(penalty)
		if err != nil {
			return ReturnQuote{}, err
		}
		return ReturnQuote{TotalCost: total, TotalDaysUsed: daysUsed}, nil
	case daysUsed == planDays:
		return ReturnQuote{TotalCost: r.Plan.Total(), TotalDaysUsed: daysUsed}, nil
	default:
		extra := s.lateDailyFee().Multiply(int64(daysUsed - planDays))
		total, err := r.Plan.Total().Add(extra)
		if err != nil {
			return ReturnQuote{}, err
		}
		return ReturnQuote{TotalCost: total, TotalDaysUsed: daysUsed}, nil
	}
}

func (s PlanPenalty) penaltyPercent(planDays int) int64 {
	if s.PenaltyPercentByDays != nil {
		if pct, ok := s.PenaltyPercentByDays[planDays]; ok {
			return pct
		}
		return 0
	}
	switch planDays {
	case 7:
		return 20
	case 15:
		return 40
	default:
		return 0
	}
}

func (s PlanPenalty) lateDailyFee() money.Money {
	if s.LateDailyFee.Currency != "" {
		return s.LateDailyFee
	}
	return money.BRL(5000)
}

var _ Strategy = PlanPenalty{}

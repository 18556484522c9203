package pricing

import (
	"context"
	"errors"
	"time"

	"motorent/internal/domain/rent"
	"motorent/internal/domain/shared/money"
)

var ErrRentRequired = errors.New("pricing: rent is required")

// ReturnQuote is the settlement for a rent delivered at a given moment.
type ReturnQuote struct {
	TotalCost     money.Money
	TotalDaysUsed int
}

// Strategy computes the actual return cost for a rent. Implementations are
// selected by configuration, not inheritance.
type Strategy interface {
	CalculateCost(ctx context.Context, r *rent.Rent, deliveryAt time.Time) (ReturnQuote, error)
}

package rent

import (
	"time"

	"motorent/internal/domain/deliverer"
	"motorent/internal/domain/shared/money"
)

// Requested is published when a rent is created with a forecast cost.
type Requested struct {
	RentID      ID           `json:"rent_id"`
	DelivererID deliverer.ID `json:"deliverer_id"`
	Plate       string       `json:"plate"`
	Days        int          `json:"days"`
	TotalCost   money.Money  `json:"total_cost"`
	At          time.Time    `json:"at"`
}

func (e Requested) EventName() string     { return "rent.requested" }
func (e Requested) AggregateID() string   { return string(e.RentID) }
func (e Requested) OccurredAt() time.Time { return e.At }

// Returned is published when the motorcycle comes back and the actual cost
// is settled.
type Returned struct {
	RentID      ID           `json:"rent_id"`
	DelivererID deliverer.ID `json:"deliverer_id"`
	Plate       string       `json:"plate"`
	TotalCost   money.Money  `json:"total_cost"`
	DeliveredAt time.Time    `json:"delivered_at"`
	At          time.Time    `json:"at"`
}

func (e Returned) EventName() string     { return "rent.returned" }
func (e Returned) AggregateID() string   { return string(e.RentID) }
func (e Returned) OccurredAt() time.Time { return e.At }

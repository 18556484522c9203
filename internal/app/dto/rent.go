package dto

import (
	"time"

	rentservice "motorent/internal/app/services/rent"
	domainplan "motorent/internal/domain/plan"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type RentPlanDTO struct {
	Days      int      `json:"days"`
	DailyRate MoneyDTO `json:"daily_rate"`
	Total     MoneyDTO `json:"total"`
}

type RentPlanCollection struct {
	Items []RentPlanDTO `json:"items"`
}

type RentSummary struct {
	ID               string      `json:"id"`
	DelivererID      string      `json:"deliverer_id"`
	MotoID           string      `json:"moto_id"`
	Plate            string      `json:"plate"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	DeliveryForecast time.Time   `json:"delivery_forecast"`
	Plan             RentPlanDTO `json:"plan"`
	TotalCost        MoneyDTO    `json:"total_cost"`
	Status           string      `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

type RentCollection struct {
	Items   []RentSummary `json:"items"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

type ReturnBudget struct {
	RentID        string   `json:"rent_id"`
	TotalCost     MoneyDTO `json:"total_cost"`
	TotalDaysUsed int      `json:"total_days_used"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   value.Amount,
		Currency: value.Currency,
	}
}

func MapRentSummary(r *domainrent.Rent) RentSummary {
	if r == nil {
		return RentSummary{}
	}
	return RentSummary{
		ID:               string(r.ID),
		DelivererID:      string(r.DelivererID),
		MotoID:           string(r.MotoID),
		Plate:            r.Plate,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		DeliveryForecast: r.DeliveryForecast,
		Plan: RentPlanDTO{
			Days:      r.Plan.Days,
			DailyRate: MapMoney(r.Plan.DailyRate),
			Total:     MapMoney(r.Plan.Total()),
		},
		TotalCost: MapMoney(r.TotalCost),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func MapRentCollection(rents []*domainrent.Rent, page domainrent.Page) RentCollection {
	items := make([]RentSummary, 0, len(rents))
	for _, r := range rents {
		items = append(items, MapRentSummary(r))
	}
	n := page.Normalized()
	return RentCollection{Items: items, Page: n.Page, PerPage: n.PerPage}
}

func MapRentPlanCollection(plans []domainplan.RentPlan) RentPlanCollection {
	items := make([]RentPlanDTO, 0, len(plans))
	for _, p := range plans {
		items = append(items, RentPlanDTO{
			Days:      p.Days,
			DailyRate: MapMoney(p.DailyRate),
			Total:     MapMoney(p.Total()),
		})
	}
	return RentPlanCollection{Items: items}
}

func MapReturnBudget(budget rentservice.ReturnBudget) ReturnBudget {
	out := ReturnBudget{
		TotalCost:     MapMoney(budget.TotalCost),
		TotalDaysUsed: budget.TotalDaysUsed,
	}
	if budget.Rent != nil {
		out.RentID = string(budget.Rent.ID)
	}
	return out
}

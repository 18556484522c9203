package rent

import (
	"errors"
	"testing"
	"time"

	"motorent/internal/domain/plan"
	"motorent/internal/domain/shared/money"
)

func validParams() CreateParams {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return CreateParams{
		ID:          "rent-1",
		DelivererID: "deliverer-1",
		MotoID:      "moto-1",
		Plate:       "abc-1234",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		Plan:        plan.RentPlan{Days: 7, DailyRate: money.BRL(3000)},
		CreatedAt:   time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewRent(t *testing.T) {
	r, err := NewRent(validParams())
	if err != nil {
		t.Fatalf("NewRent: %v", err)
	}
	if r.Status != StatusProcessing {
		t.Errorf("status = %s, want %s", r.Status, StatusProcessing)
	}
	if r.Plate != "ABC1234" {
		t.Errorf("plate = %q, want normalized ABC1234", r.Plate)
	}
	if !r.DeliveryForecast.Equal(r.EndDate) {
		t.Errorf("delivery forecast = %v, want end date %v", r.DeliveryForecast, r.EndDate)
	}
	if r.TotalCost.Amount != 21000 {
		t.Errorf("forecast cost = %d, want 21000", r.TotalCost.Amount)
	}
	events := r.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("pending events = %d, want 1", len(events))
	}
	if events[0].EventName() != "rent.requested" {
		t.Errorf("event name = %s, want rent.requested", events[0].EventName())
	}
}

func TestNewRentValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateParams)
		wantErr error
	}{
		{"missing id", func(p *CreateParams) { p.ID = "" }, ErrIDRequired},
		{"missing deliverer", func(p *CreateParams) { p.DelivererID = "" }, ErrDelivererRequired},
		{"missing plate", func(p *CreateParams) { p.Plate = "  " }, ErrPlateRequired},
		{"end before start", func(p *CreateParams) { p.EndDate = p.StartDate.AddDate(0, 0, -1) }, ErrInvalidPeriod},
		{"zero day plan", func(p *CreateParams) { p.Plan = plan.RentPlan{} }, plan.ErrInvalidDays},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			if _, err := NewRent(params); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRentLifecycle(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	r, _ := NewRent(validParams())
	r.ClearEvents()

	if err := r.CompleteReturn(money.BRL(100), now, now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("return before activation: err = %v, want %v", err, ErrInvalidState)
	}

	if err := r.Activate(now); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if r.Status != StatusRented {
		t.Errorf("status = %s, want %s", r.Status, StatusRented)
	}
	if err := r.Activate(now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double activate: err = %v, want %v", err, ErrInvalidState)
	}
	if err := r.Cancel(now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancel active rent: err = %v, want %v", err, ErrInvalidState)
	}

	deliveredAt := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	if err := r.CompleteReturn(money.BRL(16200), deliveredAt, now); err != nil {
		t.Fatalf("CompleteReturn: %v", err)
	}
	if r.Status != StatusReturned {
		t.Errorf("status = %s, want %s", r.Status, StatusReturned)
	}
	if r.TotalCost.Amount != 16200 {
		t.Errorf("actual cost = %d, want 16200", r.TotalCost.Amount)
	}
	if !r.EndDate.Equal(deliveredAt) {
		t.Errorf("end date = %v, want %v", r.EndDate, deliveredAt)
	}
	events := r.PendingEvents()
	if len(events) != 1 || events[0].EventName() != "rent.returned" {
		t.Fatalf("events = %v, want single rent.returned", events)
	}
}

func TestRentCancel(t *testing.T) {
	now := time.Now()
	r, _ := NewRent(validParams())
	if err := r.Cancel(now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if r.Status != StatusCancelled {
		t.Errorf("status = %s, want %s", r.Status, StatusCancelled)
	}
}

func TestPageNormalized(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		wantPage   int
		wantPer    int
		wantOffset int
	}{
		{"zero value defaults", Page{}, 1, 20, 0},
		{"negative values default", Page{Page: -3, PerPage: -1}, 1, 20, 0},
		{"third page of ten", Page{Page: 3, PerPage: 10}, 3, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.page.Normalized()
			if n.Page != tt.wantPage || n.PerPage != tt.wantPer {
				t.Errorf("normalized = %+v, want page %d per %d", n, tt.wantPage, tt.wantPer)
			}
			if got := tt.page.Offset(); got != tt.wantOffset {
				t.Errorf("offset = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

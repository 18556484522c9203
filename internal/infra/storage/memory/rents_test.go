package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domainplan "motorent/internal/domain/plan"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/money"
)

func seedRent(t *testing.T, repo *RentRepository, id string, created time.Time, status domainrent.Status) *domainrent.Rent {
	t.Helper()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	r, err := domainrent.NewRent(domainrent.CreateParams{
		ID:          domainrent.ID(id),
		DelivererID: "deliverer-1",
		MotoID:      "moto-1",
		Plate:       "ABC1234",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		Plan:        domainplan.RentPlan{Days: 7, DailyRate: money.BRL(3000)},
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("seed rent: %v", err)
	}
	r.Status = status
	if err := repo.Create(context.Background(), r); err != nil {
		t.Fatalf("create rent: %v", err)
	}
	return r
}

func TestRentRepositoryFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewRentRepository()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedRent(t, repo, fmt.Sprintf("rent-%d", i), base.Add(time.Duration(i)*time.Hour), domainrent.StatusProcessing)
	}
	seedRent(t, repo, "rent-active", base.Add(10*time.Hour), domainrent.StatusRented)

	t.Run("filters by status", func(t *testing.T) {
		got, err := repo.Filter(ctx, domainrent.Filter{Status: domainrent.StatusRented}, domainrent.Page{})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		if len(got) != 1 || got[0].ID != "rent-active" {
			t.Errorf("got %d rents, want the single active one", len(got))
		}
	})

	t.Run("pages newest first", func(t *testing.T) {
		first, err := repo.Filter(ctx, domainrent.Filter{}, domainrent.Page{Page: 1, PerPage: 2})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		if len(first) != 2 {
			t.Fatalf("page size = %d, want 2", len(first))
		}
		if first[0].ID != "rent-active" {
			t.Errorf("first item = %s, want newest rent-active", first[0].ID)
		}
		second, err := repo.Filter(ctx, domainrent.Filter{}, domainrent.Page{Page: 2, PerPage: 2})
		if err != nil {
			t.Fatalf("Filter page 2: %v", err)
		}
		if len(second) != 2 {
			t.Fatalf("second page size = %d, want 2", len(second))
		}
		if second[0].CreatedAt.Before(second[1].CreatedAt) {
			t.Error("second page not sorted newest first")
		}
	})

	t.Run("out of range page is empty", func(t *testing.T) {
		got, err := repo.Filter(ctx, domainrent.Filter{}, domainrent.Page{Page: 99, PerPage: 20})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d rents, want empty page", len(got))
		}
	})
}

func TestRentRepositoryFindRentedByPlate(t *testing.T) {
	ctx := context.Background()
	repo := NewRentRepository()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	seedRent(t, repo, "rent-processing", base, domainrent.StatusProcessing)

	got, err := repo.FindRentedByPlate(ctx, "deliverer-1", "ABC1234")
	if err != nil {
		t.Fatalf("FindRentedByPlate: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for a plate without an active rent", got.ID)
	}

	seedRent(t, repo, "rent-active", base.Add(time.Hour), domainrent.StatusRented)
	got, err = repo.FindRentedByPlate(ctx, "deliverer-1", "ABC1234")
	if err != nil {
		t.Fatalf("FindRentedByPlate: %v", err)
	}
	if got == nil || got.ID != "rent-active" {
		t.Fatalf("got %v, want rent-active", got)
	}
}

func TestRentRepositoryOptimisticUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewRentRepository()
	r := seedRent(t, repo, "rent-1", time.Now(), domainrent.StatusRented)

	if r.Version != 1 {
		t.Fatalf("version after create = %d, want 1", r.Version)
	}
	if err := repo.Update(ctx, r); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.Version != 2 {
		t.Errorf("version after update = %d, want 2", r.Version)
	}

	stale := *r
	stale.Version = 1
	if err := repo.Update(ctx, &stale); !errors.Is(err, ErrConcurrentUpdate) {
		t.Errorf("stale update err = %v, want %v", err, ErrConcurrentUpdate)
	}
}

func TestRentRepositoryCountByMoto(t *testing.T) {
	ctx := context.Background()
	repo := NewRentRepository()
	base := time.Now()
	seedRent(t, repo, "rent-1", base, domainrent.StatusProcessing)
	seedRent(t, repo, "rent-2", base.Add(time.Hour), domainrent.StatusReturned)

	count, err := repo.CountByMoto(ctx, "moto-1")
	if err != nil {
		t.Fatalf("CountByMoto: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	count, _ = repo.CountByMoto(ctx, "moto-unknown")
	if count != 0 {
		t.Errorf("count for unknown moto = %d, want 0", count)
	}
}

package rent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appoutbox "motorent/internal/app/outbox"
	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainplan "motorent/internal/domain/plan"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
	"motorent/internal/domain/shared/fault"
	"motorent/internal/domain/shared/money"
)

func fixtureDeliverer(t *testing.T, licenseType domaindeliverer.LicenseType) *domaindeliverer.Deliverer {
	t.Helper()
	d, err := domaindeliverer.NewDeliverer(domaindeliverer.CreateParams{
		ID:           "deliverer-1",
		Name:         "Joao Entregas",
		CNPJ:         "12345678000195",
		BirthDate:    time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		CNHNumber:    "12345678901",
		CNHType:      licenseType,
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("fixture deliverer: %v", err)
	}
	return d
}

func fixtureMoto(t *testing.T) *domainmoto.Motorcycle {
	t.Helper()
	m, err := domainmoto.NewMotorcycle(domainmoto.CreateParams{
		ID:    "moto-1",
		Year:  2023,
		Model: "Honda CG 160",
		Plate: "ABC1234",
	})
	if err != nil {
		t.Fatalf("fixture moto: %v", err)
	}
	m.ClearEvents()
	return m
}

func newRentService(deliverers *MockDelivererRepo, motos *MockMotoRepo, plans *MockPlanRepo, rents *MockRentRepo, box *MockOutbox, now time.Time) *Service {
	return &Service{
		Deliverers: deliverers,
		Motos:      motos,
		Catalog:    plans,
		Rents:      rents,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
		Clock:      clock.Fixed{At: now},
	}
}

func TestRenting(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 25, 10, 0, 0, 0, time.UTC)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	sevenDayPlan := domainplan.RentPlan{Days: 7, DailyRate: money.BRL(3000)}

	t.Run("creates a processing rent with the plan forecast", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		motos := new(MockMotoRepo)
		plans := new(MockPlanRepo)
		rents := new(MockRentRepo)
		box := new(MockOutbox)
		svc := newRentService(deliverers, motos, plans, rents, box, now)

		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(fixtureDeliverer(t, domaindeliverer.LicenseA), nil)
		plans.On("FindByDays", ctx, 7).Return(&sevenDayPlan, nil)
		motos.On("ByID", ctx, domainmoto.ID("moto-1")).Return(fixtureMoto(t), nil)
		rents.On("Create", ctx, mock.AnythingOfType("*rent.Rent")).Return(nil)
		box.On("Add", ctx, mock.AnythingOfType("outbox.EventRecord")).Return(nil)

		r, err := svc.Renting(ctx, RentingParams{
			DelivererID: "deliverer-1",
			MotoID:      "moto-1",
			StartDate:   start,
			EndDate:     end,
		})
		assert.NoError(t, err)
		assert.NotNil(t, r)
		assert.Equal(t, domainrent.StatusProcessing, r.Status)
		assert.Equal(t, "ABC1234", r.Plate)
		assert.Equal(t, int64(21000), r.TotalCost.Amount)
		assert.Equal(t, 7, r.Plan.Days)
		assert.True(t, r.DeliveryForecast.Equal(r.EndDate))
		assert.Empty(t, r.PendingEvents())

		box.AssertCalled(t, "Add", ctx, mock.MatchedBy(func(rec appoutbox.EventRecord) bool {
			return rec.Name == "rent.requested"
		}))
	})

	t.Run("category B deliverer cannot rent", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		rents := new(MockRentRepo)
		svc := newRentService(deliverers, new(MockMotoRepo), new(MockPlanRepo), rents, new(MockOutbox), now)

		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(fixtureDeliverer(t, domaindeliverer.LicenseB), nil)

		_, err := svc.Renting(ctx, RentingParams{DelivererID: "deliverer-1", MotoID: "moto-1", StartDate: start, EndDate: end})
		assert.Error(t, err)
		assert.True(t, fault.IsFault(err))
		assert.Equal(t, 400, fault.StatusCode(err))
		rents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("start date must be after today", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		rents := new(MockRentRepo)
		svc := newRentService(deliverers, new(MockMotoRepo), new(MockPlanRepo), rents, new(MockOutbox), now)

		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(fixtureDeliverer(t, domaindeliverer.LicenseA), nil)

		_, err := svc.Renting(ctx, RentingParams{DelivererID: "deliverer-1", MotoID: "moto-1", StartDate: now, EndDate: end})
		assert.True(t, fault.IsFault(err))
		assert.Equal(t, 400, fault.StatusCode(err))
		rents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("end date must not precede start", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		svc := newRentService(deliverers, new(MockMotoRepo), new(MockPlanRepo), new(MockRentRepo), new(MockOutbox), now)

		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(fixtureDeliverer(t, domaindeliverer.LicenseA), nil)

		_, err := svc.Renting(ctx, RentingParams{DelivererID: "deliverer-1", MotoID: "moto-1", StartDate: start, EndDate: start.AddDate(0, 0, -1)})
		assert.True(t, fault.IsFault(err))
		assert.Equal(t, 400, fault.StatusCode(err))
	})

	t.Run("no plan for the requested period", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		plans := new(MockPlanRepo)
		rents := new(MockRentRepo)
		svc := newRentService(deliverers, new(MockMotoRepo), plans, rents, new(MockOutbox), now)

		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(fixtureDeliverer(t, domaindeliverer.LicenseA), nil)
		plans.On("FindByDays", ctx, 9).Return(nil, nil)

		_, err := svc.Renting(ctx, RentingParams{DelivererID: "deliverer-1", MotoID: "moto-1", StartDate: start, EndDate: start.AddDate(0, 0, 9)})
		assert.True(t, fault.IsFault(err))
		assert.Equal(t, 400, fault.StatusCode(err))
		rents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("deliverer lookup errors pass through", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		svc := newRentService(deliverers, new(MockMotoRepo), new(MockPlanRepo), new(MockRentRepo), new(MockOutbox), now)

		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(nil, domaindeliverer.ErrNotFound)

		_, err := svc.Renting(ctx, RentingParams{DelivererID: "deliverer-1", MotoID: "moto-1", StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, domaindeliverer.ErrNotFound)
		assert.False(t, fault.IsFault(err))
	})

	t.Run("repository create errors pass through", func(t *testing.T) {
		deliverers := new(MockDelivererRepo)
		motos := new(MockMotoRepo)
		plans := new(MockPlanRepo)
		rents := new(MockRentRepo)
		box := new(MockOutbox)
		svc := newRentService(deliverers, motos, plans, rents, box, now)

		storeErr := errors.New("write conflict")
		deliverers.On("ByID", ctx, domaindeliverer.ID("deliverer-1")).Return(fixtureDeliverer(t, domaindeliverer.LicenseA), nil)
		plans.On("FindByDays", ctx, 7).Return(&sevenDayPlan, nil)
		motos.On("ByID", ctx, domainmoto.ID("moto-1")).Return(fixtureMoto(t), nil)
		rents.On("Create", ctx, mock.AnythingOfType("*rent.Rent")).Return(storeErr)

		_, err := svc.Renting(ctx, RentingParams{DelivererID: "deliverer-1", MotoID: "moto-1", StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, storeErr)
		box.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestPlans(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 25, 10, 0, 0, 0, time.UTC)

	t.Run("lists the catalog tiers", func(t *testing.T) {
		plans := new(MockPlanRepo)
		svc := newRentService(new(MockDelivererRepo), new(MockMotoRepo), plans, new(MockRentRepo), new(MockOutbox), now)

		catalog := domainplan.DefaultCatalog()
		plans.On("All", ctx).Return(catalog, nil)

		got, err := svc.Plans(ctx)
		assert.NoError(t, err)
		assert.Equal(t, catalog, got)
	})

	t.Run("repository errors pass through", func(t *testing.T) {
		plans := new(MockPlanRepo)
		svc := newRentService(new(MockDelivererRepo), new(MockMotoRepo), plans, new(MockRentRepo), new(MockOutbox), now)

		queryErr := errors.New("cursor timeout")
		plans.On("All", ctx).Return(nil, queryErr)

		_, err := svc.Plans(ctx)
		assert.ErrorIs(t, err, queryErr)
	})
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 25, 10, 0, 0, 0, time.UTC)

	t.Run("delegates filter and page verbatim", func(t *testing.T) {
		rents := new(MockRentRepo)
		svc := newRentService(new(MockDelivererRepo), new(MockMotoRepo), new(MockPlanRepo), rents, new(MockOutbox), now)

		filter := domainrent.Filter{DelivererID: "deliverer-1", Status: domainrent.StatusRented}
		page := domainrent.Page{Page: 2, PerPage: 5}
		expected := []*domainrent.Rent{{ID: "rent-1"}, {ID: "rent-2"}}
		rents.On("Filter", ctx, filter, page).Return(expected, nil)

		got, err := svc.Paginate(ctx, filter, page)
		assert.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("empty result is returned as is", func(t *testing.T) {
		rents := new(MockRentRepo)
		svc := newRentService(new(MockDelivererRepo), new(MockMotoRepo), new(MockPlanRepo), rents, new(MockOutbox), now)

		rents.On("Filter", ctx, domainrent.Filter{}, domainrent.Page{}).Return([]*domainrent.Rent{}, nil)

		got, err := svc.Paginate(ctx, domainrent.Filter{}, domainrent.Page{})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repository errors pass through", func(t *testing.T) {
		rents := new(MockRentRepo)
		svc := newRentService(new(MockDelivererRepo), new(MockMotoRepo), new(MockPlanRepo), rents, new(MockOutbox), now)

		queryErr := errors.New("cursor timeout")
		rents.On("Filter", ctx, domainrent.Filter{}, domainrent.Page{}).Return(nil, queryErr)

		_, err := svc.Paginate(ctx, domainrent.Filter{}, domainrent.Page{})
		assert.ErrorIs(t, err, queryErr)
	})
}

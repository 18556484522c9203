package rent

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	appoutbox "motorent/internal/app/outbox"
	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainplan "motorent/internal/domain/plan"
	"motorent/internal/domain/pricing"
	domainrent "motorent/internal/domain/rent"
)

type MockDelivererRepo struct {
	mock.Mock
}

func (m *MockDelivererRepo) ByID(ctx context.Context, id domaindeliverer.ID) (*domaindeliverer.Deliverer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaindeliverer.Deliverer), args.Error(1)
}
func (m *MockDelivererRepo) ByCNHNumber(ctx context.Context, cnh string) (*domaindeliverer.Deliverer, error) {
	args := m.Called(ctx, cnh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaindeliverer.Deliverer), args.Error(1)
}
func (m *MockDelivererRepo) ByCNPJ(ctx context.Context, cnpj string) (*domaindeliverer.Deliverer, error) {
	args := m.Called(ctx, cnpj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaindeliverer.Deliverer), args.Error(1)
}
func (m *MockDelivererRepo) Save(ctx context.Context, d *domaindeliverer.Deliverer) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockMotoRepo struct {
	mock.Mock
}

func (m *MockMotoRepo) ByID(ctx context.Context, id domainmoto.ID) (*domainmoto.Motorcycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainmoto.Motorcycle), args.Error(1)
}
func (m *MockMotoRepo) ByPlate(ctx context.Context, plate string) (*domainmoto.Motorcycle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainmoto.Motorcycle), args.Error(1)
}
func (m *MockMotoRepo) Search(ctx context.Context, platePrefix string) ([]*domainmoto.Motorcycle, error) {
	args := m.Called(ctx, platePrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainmoto.Motorcycle), args.Error(1)
}
func (m *MockMotoRepo) Save(ctx context.Context, moto *domainmoto.Motorcycle) error {
	args := m.Called(ctx, moto)
	return args.Error(0)
}
func (m *MockMotoRepo) Delete(ctx context.Context, id domainmoto.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) FindByDays(ctx context.Context, days int) (*domainplan.RentPlan, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainplan.RentPlan), args.Error(1)
}
func (m *MockPlanRepo) All(ctx context.Context) ([]domainplan.RentPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainplan.RentPlan), args.Error(1)
}

type MockRentRepo struct {
	mock.Mock
}

func (m *MockRentRepo) Create(ctx context.Context, r *domainrent.Rent) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentRepo) Update(ctx context.Context, r *domainrent.Rent) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentRepo) ByID(ctx context.Context, id domainrent.ID) (*domainrent.Rent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainrent.Rent), args.Error(1)
}
func (m *MockRentRepo) Filter(ctx context.Context, filter domainrent.Filter, page domainrent.Page) ([]*domainrent.Rent, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainrent.Rent), args.Error(1)
}
func (m *MockRentRepo) FindRentedByPlate(ctx context.Context, delivererID domaindeliverer.ID, plate string) (*domainrent.Rent, error) {
	args := m.Called(ctx, delivererID, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainrent.Rent), args.Error(1)
}
func (m *MockRentRepo) CountByMoto(ctx context.Context, motoID domainmoto.ID) (int64, error) {
	args := m.Called(ctx, motoID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOutbox struct {
	mock.Mock
}

func (m *MockOutbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) CalculateCost(ctx context.Context, r *domainrent.Rent, deliveryAt time.Time) (pricing.ReturnQuote, error) {
	args := m.Called(ctx, r, deliveryAt)
	return args.Get(0).(pricing.ReturnQuote), args.Error(1)
}

package commands_test

import (
	"context"
	"testing"
	"time"

	"farmadelivery/internal/core/application/usecases/commands"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/customer"
	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddRejection(ctx context.Context, rejection order.Rejection) error {
	return m.Called(ctx, rejection).Error(0)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockPharmacyRepository struct{ mock.Mock }

func (m *MockPharmacyRepository) Add(ctx context.Context, p *pharmacy.Pharmacy) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPharmacyRepository) Update(ctx context.Context, p *pharmacy.Pharmacy) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPharmacyRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacy.Pharmacy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pharmacy.Pharmacy), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *pharmacy.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *pharmacy.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacy.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pharmacy.Product), args.Error(1)
}

type MockInsuranceRepository struct{ mock.Mock }

func (m *MockInsuranceRepository) AddPlan(ctx context.Context, plan *insurance.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockInsuranceRepository) GetPlan(ctx context.Context, id kernel.UUID) (*insurance.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insurance.Plan), args.Error(1)
}

func (m *MockInsuranceRepository) SaveDiscount(ctx context.Context, discount *insurance.Discount) error {
	return m.Called(ctx, discount).Error(0)
}

func (m *MockInsuranceRepository) FindDiscount(
	ctx context.Context,
	productID, planID kernel.UUID,
) (*insurance.Discount, error) {
	args := m.Called(ctx, productID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insurance.Discount), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

// MockUoW records the transaction calls; repositories are plain fields so each
// test only sets expectations on the ones it uses.
type MockUoW struct {
	mock.Mock

	orders     *MockOrderRepository
	couriers   *MockCourierRepository
	pharmacies *MockPharmacyRepository
	products   *MockProductRepository
	insurance  *MockInsuranceRepository
	customers  *MockCustomerRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:     new(MockOrderRepository),
		couriers:   new(MockCourierRepository),
		pharmacies: new(MockPharmacyRepository),
		products:   new(MockProductRepository),
		insurance:  new(MockInsuranceRepository),
		customers:  new(MockCustomerRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository         { return m.orders }
func (m *MockUoW) CourierRepository() ports.CourierRepository     { return m.couriers }
func (m *MockUoW) PharmacyRepository() ports.PharmacyRepository   { return m.pharmacies }
func (m *MockUoW) ProductRepository() ports.ProductRepository     { return m.products }
func (m *MockUoW) InsuranceRepository() ports.InsuranceRepository { return m.insurance }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository   { return m.customers }

// expectCommitted sets up a transaction that begins, commits and is then
// rolled back by the deferred cleanup.
func (m *MockUoW) expectCommitted() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Commit", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

// expectRolledBack sets up a transaction that begins and is rolled back
// without a commit.
func (m *MockUoW) expectRolledBack() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

// expectCommittedRecording is expectCommitted that appends "begin" to steps
// when the transaction opens.
func (m *MockUoW) expectCommittedRecording(steps *[]string) {
	m.On("Begin", mock.Anything).Run(func(mock.Arguments) {
		*steps = append(*steps, "begin")
	}).Return(nil).Once()
	m.On("Commit", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.couriers.AssertExpectations(t)
	m.pharmacies.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.insurance.AssertExpectations(t)
	m.customers.AssertExpectations(t)
}

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockCourierUoWFactory struct{ uow *MockUoW }

func (f MockCourierUoWFactory) Create() commands.CourierUoW { return f.uow }

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, events ...order.StatusChangedEvent) {
	m.Called(ctx, events)
}

type MockInvalidator struct{ mock.Mock }

func (m *MockInvalidator) Invalidate(ctx context.Context, pharmacyID kernel.UUID) {
	m.Called(ctx, pharmacyID)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (kernel.Coordinates, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(kernel.Coordinates), args.Error(1)
}

func newActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func newCoordinates(t *testing.T, lat, lon float64) *kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lon)
	require.NoError(t, err)
	return &c
}

func newAddress(t *testing.T, coordinates *kernel.Coordinates) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("Av. Corrientes", "1234", "CABA", "Buenos Aires", "C1043", "", coordinates)
	require.NoError(t, err)
	return a
}

func newProduct(t *testing.T, pharmacyID kernel.UUID, price int64, stock int, prescription bool) *pharmacy.Product {
	t.Helper()
	p, err := pharmacy.NewProduct(kernel.NewUUID(), pharmacyID, pharmacy.ProductDetails{
		Name:                 "Amoxicilina 500mg",
		Category:             "Antibióticos",
		BasePrice:            decimal.NewFromInt(price),
		PrescriptionRequired: prescription,
	}, stock)
	require.NoError(t, err)
	return p
}

// orderIn restores an order already in status, as a repository would return
// it.
func orderIn(
	t *testing.T,
	status order.Status,
	pharmacyID kernel.UUID,
	courierID *kernel.UUID,
	coordinates *kernel.Coordinates,
	lines ...order.Line,
) *order.Order {
	t.Helper()

	if len(lines) == 0 {
		line, err := order.NewLine(kernel.NewUUID(), "Ibuprofeno 400mg", 2, decimal.NewFromInt(500), decimal.Zero)
		require.NoError(t, err)
		lines = []order.Line{line}
	}
	number, err := order.NewNumber(now)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  kernel.NewUUID(),
		Number:              number,
		CustomerID:          kernel.NewUUID(),
		PharmacyID:          pharmacyID,
		CourierID:           courierID,
		Status:              status,
		PaymentMethod:       order.Cash,
		Lines:               lines,
		DeliveryAddress:     newAddress(t, coordinates),
		CreatedAt:           now.Add(-time.Hour),
		UpdatedAt:           now.Add(-time.Hour),
		EstimatedDeliveryAt: now.Add(time.Hour),
		Version:             3,
	})
	require.NoError(t, err)
	return o
}

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, scope, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindLatestByVehicle(
	ctx context.Context, vehicleID kernel.UUID, statuses ...order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, vehicleID, statuses)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindLatestStartedByVehicle(
	ctx context.Context, vehicleID kernel.UUID, statuses ...order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, vehicleID, statuses)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListInProgressStartedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, scope, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) FindByNameAndPhone(
	ctx context.Context, branchID kernel.UUID, fullName, phone string,
) (*customer.Customer, error) {
	args := m.Called(ctx, branchID, fullName, phone)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, scope branch.Scope, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, scope, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) FindByPlate(
	ctx context.Context, scope branch.Scope, plate kernel.PlateNumber,
) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, scope, plate)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetLabourCode(ctx context.Context, id kernel.UUID) (*catalog.LabourCode, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*catalog.LabourCode)
	return l, args.Error(1)
}

func (m *MockCatalogRepository) ServiceTypesByNames(ctx context.Context, names []string) ([]*catalog.ServiceType, error) {
	args := m.Called(ctx, names)
	types, _ := args.Get(0).([]*catalog.ServiceType)
	return types, args.Error(1)
}

func (m *MockCatalogRepository) ServiceAddonsByNames(ctx context.Context, names []string) ([]*catalog.ServiceAddon, error) {
	args := m.Called(ctx, names)
	addons, _ := args.Get(0).([]*catalog.ServiceAddon)
	return addons, args.Error(1)
}

func (m *MockCatalogRepository) GetDelayReason(ctx context.Context, id kernel.UUID) (*catalog.DelayReason, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*catalog.DelayReason)
	return r, args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*inventory.Item)
	return i, args.Error(1)
}

func (m *MockInventoryRepository) FindByNameAndBrand(ctx context.Context, name, brand string) (*inventory.Item, error) {
	args := m.Called(ctx, name, brand)
	i, _ := args.Get(0).(*inventory.Item)
	return i, args.Error(1)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*branch.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) ListChildren(ctx context.Context, parentID kernel.UUID) ([]*branch.Branch, error) {
	args := m.Called(ctx, parentID)
	children, _ := args.Get(0).([]*branch.Branch)
	return children, args.Error(1)
}

func (m *MockBranchRepository) Add(ctx context.Context, b *branch.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockUoW mocks the transaction calls and hands out the repository mocks.
// It satisfies every composed unit of work interface of the package.
type MockUoW struct {
	mock.Mock

	orders    *MockOrderRepository
	customers *MockCustomerRepository
	vehicles  *MockVehicleRepository
	catalog   *MockCatalogRepository
	inventory *MockInventoryRepository
	branches  *MockBranchRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:    new(MockOrderRepository),
		customers: new(MockCustomerRepository),
		vehicles:  new(MockVehicleRepository),
		catalog:   new(MockCatalogRepository),
		inventory: new(MockInventoryRepository),
		branches:  new(MockBranchRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository         { return m.orders }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository   { return m.customers }
func (m *MockUoW) VehicleRepository() ports.VehicleRepository     { return m.vehicles }
func (m *MockUoW) CatalogRepository() ports.CatalogRepository     { return m.catalog }
func (m *MockUoW) InventoryRepository() ports.InventoryRepository { return m.inventory }
func (m *MockUoW) BranchRepository() ports.BranchRepository       { return m.branches }

// expectCommit sets up a successful Begin/Commit; Rollback still runs from the
// handler's defer.
func (m *MockUoW) expectCommit() {
	mock.InOrder(
		m.On("Begin", mock.Anything).Return(nil).Once(),
		m.On("Commit", mock.Anything).Return(nil).Once(),
		m.On("Rollback", mock.Anything).Return(nil).Once(),
	)
}

// expectRollback sets up a Begin that is only ever rolled back.
func (m *MockUoW) expectRollback() {
	mock.InOrder(
		m.On("Begin", mock.Anything).Return(nil).Once(),
		m.On("Rollback", mock.Anything).Return(nil).Once(),
	)
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.customers.AssertExpectations(t)
	m.vehicles.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.branches.AssertExpectations(t)
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockIntakeUoWFactory struct{ uow *MockUoW }

func (f MockIntakeUoWFactory) Create() commands.IntakeUoW { return f.uow }

type MockInventoryUoWFactory struct{ uow *MockUoW }

func (f MockInventoryUoWFactory) Create() commands.InventoryUoW { return f.uow }

type MockBranchUoWFactory struct{ uow *MockUoW }

func (f MockBranchUoWFactory) Create() commands.BranchUoW { return f.uow }

type MockVehicleLocker struct{ mock.Mock }

func (m *MockVehicleLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	args := m.Called(ctx, key, ttl)
	unlock, _ := args.Get(0).(ports.UnlockFunc)
	return unlock, args.Error(1)
}

type MockStockAdjuster struct{ mock.Mock }

func (m *MockStockAdjuster) ApplyForOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func noopUnlock(context.Context) error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(at time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return at })
}

func mustPlate(raw string) kernel.PlateNumber {
	p, err := kernel.NewPlateNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func newTestCustomer(branchID kernel.UUID) *customer.Customer {
	c, err := customer.NewPlateCustomer(kernel.NewUUID(), branchID, mustPlate("ABC123"))
	if err != nil {
		panic(err)
	}
	return c
}

func newTestVehicle(customerID, branchID kernel.UUID, plate string) *vehicle.Vehicle {
	v, err := vehicle.NewVehicle(kernel.NewUUID(), customerID, branchID, mustPlate(plate))
	if err != nil {
		panic(err)
	}
	return v
}

func newTestOrder(branchID kernel.UUID, kind order.Type, createdAt time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), branchID, kernel.NewUUID(), nil, kind, order.Medium, createdAt)
	if err != nil {
		panic(err)
	}
	return o
}

// restoredOrder builds an order in any status, with startedAt set when given.
func restoredOrder(branchID kernel.UUID, status order.Status, createdAt time.Time, startedAt *time.Time) *order.Order {
	o, err := order.RestoreOrder(order.Snapshot{
		ID:         kernel.NewUUID(),
		Number:     order.NewNumber(createdAt).String(),
		BranchID:   branchID,
		CustomerID: kernel.NewUUID(),
		Type:       order.Service,
		Status:     status,
		Priority:   order.Medium,
		CreatedAt:  createdAt,
		StartedAt:  startedAt,
	})
	if err != nil {
		panic(err)
	}
	return o
}

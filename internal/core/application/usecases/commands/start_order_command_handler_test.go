package commands_test

import (
	"errors"
	"testing"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var startNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type startFixture struct {
	home    kernel.UUID
	scope   branch.Scope
	uow     *MockUoW
	locker  *MockVehicleLocker
	handler commands.StartOrderCommandHandler
}

func newStartFixture() *startFixture {
	home := kernel.NewUUID()
	f := &startFixture{
		home:   home,
		scope:  branch.NewScope(home),
		uow:    newMockUoW(),
		locker: new(MockVehicleLocker),
	}
	f.handler = commands.NewStartOrderCommandHandler(
		MockIntakeUoWFactory{uow: f.uow}, f.locker, fixedClock(startNow), quietLogger(),
	)
	return f
}

func (f *startFixture) expectLock(plate string) {
	f.locker.On("Lock", mock.Anything, "intake:"+f.home.String()+":"+plate, 15*time.Second).
		Return(ports.UnlockFunc(noopUnlock), nil).Once()
}

func notFound(name string) error {
	return errs.NewObjectNotFoundError(name, "x")
}

func TestStartOrderCommandHandler_NewPlateCreatesCustomerVehicleAndOrder(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("ABC123")
	f.uow.expectCommit()

	oil, _ := catalog.NewServiceType(kernel.NewUUID(), "Oil Change", 30, true)
	rotation, _ := catalog.NewServiceType(kernel.NewUUID(), "Tire Rotation", 30, true)
	names := []string{"Oil Change", "Tire Rotation"}

	f.uow.vehicles.On("FindByPlate", mock.Anything, f.scope, mustPlate("ABC123")).Return(nil, notFound("plate")).Once()
	f.uow.catalog.On("ServiceTypesByNames", mock.Anything, names).Return([]*catalog.ServiceType{oil, rotation}, nil).Once()
	f.uow.catalog.On("ServiceAddonsByNames", mock.Anything, names).Return(nil, nil).Once()

	var (
		addedCustomer *customer.Customer
		addedVehicle  *vehicle.Vehicle
		addedOrder    *order.Order
	)
	f.uow.customers.On("Add", mock.Anything, mock.AnythingOfType("*customer.Customer")).
		Run(func(args mock.Arguments) { addedCustomer = args.Get(1).(*customer.Customer) }).Return(nil).Once()
	f.uow.vehicles.On("Add", mock.Anything, mock.AnythingOfType("*vehicle.Vehicle")).
		Run(func(args mock.Arguments) { addedVehicle = args.Get(1).(*vehicle.Vehicle) }).Return(nil).Once()
	f.uow.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { addedOrder = args.Get(1).(*order.Order) }).Return(nil).Once()

	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{
		Plate:            "abc123",
		ServiceSelection: []string{" Oil Change", "Tire Rotation", "oil change"},
	})
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.OrderCreated, result.Outcome)
	assert.False(t, result.ExistingOrder())
	require.NotNil(t, addedOrder)
	assert.Equal(t, order.Created, addedOrder.Status())
	assert.Equal(t, order.Service, addedOrder.Type())
	require.NotNil(t, addedOrder.EstimatedDuration())
	assert.Equal(t, 60, *addedOrder.EstimatedDuration())
	assert.Equal(t, "Order started for ABC123: Oil Change, Tire Rotation", addedOrder.Description())
	assert.Len(t, addedOrder.LineItems(), 2)
	assert.True(t, addedOrder.BranchID().IsEqual(f.home))

	require.NotNil(t, addedCustomer)
	require.NotNil(t, addedVehicle)
	assert.Equal(t, 1, addedCustomer.TotalVisits())
	assert.True(t, addedVehicle.CustomerID().IsEqual(addedCustomer.ID()))
	assert.True(t, addedOrder.CustomerID().IsEqual(addedCustomer.ID()))
	require.NotNil(t, result.VehicleID)
	assert.True(t, result.VehicleID.IsEqual(addedVehicle.ID()))

	f.uow.assertAll(t)
	f.locker.AssertExpectations(t)
}

func TestStartOrderCommandHandler_KnownPlateReturnsOpenOrder(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("ABC123")
	f.uow.expectRollback()

	cust := newTestCustomer(f.home)
	veh := newTestVehicle(cust.ID(), f.home, "ABC123")
	open := newTestOrder(f.home, order.Service, startNow.Add(-time.Hour))

	f.uow.vehicles.On("FindByPlate", mock.Anything, f.scope, mustPlate("ABC123")).Return(veh, nil).Once()
	f.uow.orders.On("FindLatestByVehicle", mock.Anything, veh.ID(), []order.Status{order.Created, order.InProgress}).
		Return(open, nil).Once()

	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{Plate: "ABC123"})
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.ExistingOrderReturned, result.Outcome)
	assert.True(t, result.ExistingOrder())
	assert.True(t, result.OrderID.IsEqual(open.ID()))
	assert.Equal(t, open.Number().String(), result.OrderNumber)
	f.uow.assertAll(t)
}

func TestStartOrderCommandHandler_KnownPlateWithoutOpenOrderReturnsCustomer(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("ABC123")
	f.uow.expectRollback()

	cust := newTestCustomer(f.home)
	veh := newTestVehicle(cust.ID(), f.home, "ABC123")

	f.uow.vehicles.On("FindByPlate", mock.Anything, f.scope, mustPlate("ABC123")).Return(veh, nil).Once()
	f.uow.orders.On("FindLatestByVehicle", mock.Anything, veh.ID(), []order.Status{order.Created, order.InProgress}).
		Return(nil, notFound("order")).Once()

	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{Plate: "ABC123"})
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.CustomerFound, result.Outcome)
	assert.False(t, result.HasOrder())
	assert.True(t, result.CustomerID.IsEqual(cust.ID()))
	f.uow.assertAll(t)
}

func TestStartOrderCommandHandler_ForceNewOrderSkipsDeduplication(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("ABC123")
	f.uow.expectCommit()

	cust := newTestCustomer(f.home)
	veh := newTestVehicle(cust.ID(), f.home, "ABC123")

	f.uow.vehicles.On("FindByPlate", mock.Anything, f.scope, mustPlate("ABC123")).Return(veh, nil).Once()
	f.uow.customers.On("Get", mock.Anything, f.scope, cust.ID()).Return(cust, nil).Once()
	f.uow.customers.On("Update", mock.Anything, cust).Return(nil).Once()

	var added *order.Order
	f.uow.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).Return(nil).Once()

	minutes := 45
	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{
		Plate:             "ABC123",
		EstimatedDuration: &minutes,
		ForceNewOrder:     true,
	})
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.OrderCreated, result.Outcome)
	require.NotNil(t, added)
	assert.Equal(t, "Order started for ABC123", added.Description())
	require.NotNil(t, added.EstimatedDuration())
	assert.Equal(t, 45, *added.EstimatedDuration())
	f.uow.orders.AssertNotCalled(t, "FindLatestByVehicle", mock.Anything, mock.Anything, mock.Anything)
	f.uow.assertAll(t)
}

func TestStartOrderCommandHandler_ExistingCustomerReusesCreatedOrder(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("XYZ9")
	f.uow.expectCommit()

	cust := newTestCustomer(f.home)
	veh := newTestVehicle(cust.ID(), f.home, "XYZ9")
	pending := newTestOrder(f.home, order.Service, startNow.Add(-5*time.Minute))

	f.uow.customers.On("Get", mock.Anything, f.scope, cust.ID()).Return(cust, nil).Once()
	f.uow.vehicles.On("FindByPlate", mock.Anything, branch.NewScope(f.home), mustPlate("XYZ9")).Return(veh, nil).Once()
	f.uow.orders.On("FindLatestByVehicle", mock.Anything, veh.ID(), []order.Status{order.Created}).Return(pending, nil).Once()
	f.uow.customers.On("Update", mock.Anything, cust).Return(nil).Once()

	customerID := cust.ID()
	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{
		Plate:               "XYZ9",
		UseExistingCustomer: true,
		ExistingCustomerID:  &customerID,
	})
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.OrderReused, result.Outcome)
	assert.True(t, result.OrderID.IsEqual(pending.ID()))
	f.uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.assertAll(t)
}

func TestStartOrderCommandHandler_ReusesRunningOrderWhenNoneCreated(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("XYZ9")
	f.uow.expectCommit()

	cust := newTestCustomer(f.home)
	veh := newTestVehicle(cust.ID(), f.home, "XYZ9")
	started := startNow.Add(-30 * time.Minute)
	running := restoredOrder(f.home, order.InProgress, startNow.Add(-time.Hour), &started)

	f.uow.customers.On("Get", mock.Anything, f.scope, cust.ID()).Return(cust, nil).Once()
	f.uow.vehicles.On("FindByPlate", mock.Anything, branch.NewScope(f.home), mustPlate("XYZ9")).Return(veh, nil).Once()
	f.uow.orders.On("FindLatestByVehicle", mock.Anything, veh.ID(), []order.Status{order.Created}).
		Return(nil, notFound("order")).Once()
	f.uow.orders.On("FindLatestStartedByVehicle", mock.Anything, veh.ID(), []order.Status{order.InProgress, order.Overdue}).
		Return(running, nil).Once()
	f.uow.customers.On("Update", mock.Anything, cust).Return(nil).Once()

	customerID := cust.ID()
	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{
		Plate:               "XYZ9",
		UseExistingCustomer: true,
		ExistingCustomerID:  &customerID,
	})
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.OrderReused, result.Outcome)
	assert.Equal(t, order.InProgress, result.Status)
	f.uow.assertAll(t)
}

func TestStartOrderCommandHandler_LockError(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.locker.On("Lock", mock.Anything, mock.Anything, mock.Anything).Return(nil, ports.ErrLockNotAcquired).Once()

	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{Plate: "ABC123"})
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrLockNotAcquired)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestStartOrderCommandHandler_NoHomeBranchForNewPlate(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.scope = branch.UnrestrictedScope(nil)
	f.locker.On("Lock", mock.Anything, "intake:any:ABC123", mock.Anything).Return(ports.UnlockFunc(noopUnlock), nil).Once()
	f.uow.expectRollback()
	f.uow.vehicles.On("FindByPlate", mock.Anything, f.scope, mustPlate("ABC123")).Return(nil, notFound("plate")).Once()

	cmd, err := commands.NewStartOrderCommand(f.scope, "admin", commands.StartOrderInput{Plate: "ABC123"})
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	f.uow.assertAll(t)
}

func TestStartOrderCommandHandler_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newStartFixture()
	f.expectLock("ABC123")
	f.uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	cmd, err := commands.NewStartOrderCommand(f.scope, "frontdesk", commands.StartOrderInput{Plate: "ABC123"})
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestStartOrderCommandHandler_NotConstructed(t *testing.T) {
	f := newStartFixture()
	_, err := f.handler.Handle(t.Context(), commands.StartOrderCommand{})
	require.ErrorIs(t, err, commands.ErrStartOrderCommandIsNotConstructed)
}

func TestNewStartOrderCommand(t *testing.T) {
	scope := branch.NewScope(kernel.NewUUID())

	t.Run("plate required without existing customer", func(t *testing.T) {
		_, err := commands.NewStartOrderCommand(scope, "desk", commands.StartOrderInput{})
		require.Error(t, err)
	})

	t.Run("existing customer without plate", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewStartOrderCommand(scope, "desk", commands.StartOrderInput{
			UseExistingCustomer: true,
			ExistingCustomerID:  &id,
		})
		require.NoError(t, err)
		assert.Nil(t, cmd.Plate())
		assert.Equal(t, order.Service, cmd.OrderType())
	})

	t.Run("existing customer flag without id", func(t *testing.T) {
		_, err := commands.NewStartOrderCommand(scope, "desk", commands.StartOrderInput{
			Plate:               "ABC123",
			UseExistingCustomer: true,
		})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative estimate", func(t *testing.T) {
		minutes := -5
		_, err := commands.NewStartOrderCommand(scope, "desk", commands.StartOrderInput{
			Plate:             "ABC123",
			EstimatedDuration: &minutes,
		})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown order type", func(t *testing.T) {
		_, err := commands.NewStartOrderCommand(scope, "desk", commands.StartOrderInput{
			Plate:     "ABC123",
			OrderType: "warranty",
		})
		require.Error(t, err)
	})

	t.Run("service names are cleaned", func(t *testing.T) {
		cmd, err := commands.NewStartOrderCommand(scope, "desk", commands.StartOrderInput{
			Plate:            "ABC123",
			ServiceSelection: []string{"", " Wash ", "wash", "Polish"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Wash", "Polish"}, cmd.ServiceSelection())
	})
}

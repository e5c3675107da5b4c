package commands_test

import (
	"testing"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var lifecycleNow = time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC)

func newCompleteHandler(uow *MockUoW, adjuster commands.OrderStockAdjuster) commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(
		MockOrderUoWFactory{uow: uow},
		services.NewDelayTracker(quietLogger()),
		adjuster,
		fixedClock(lifecycleNow),
		quietLogger(),
	)
}

func runningOrder(home kernel.UUID, startedMinutesAgo int) *order.Order {
	started := lifecycleNow.Add(-time.Duration(startedMinutesAgo) * time.Minute)
	return restoredOrder(home, order.InProgress, started.Add(-5*time.Minute), &started)
}

func TestCompleteOrder_OverThresholdRequiresDelayReason(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	scope := branch.NewScope(home)
	uow := newMockUoW()
	uow.expectRollback()

	o := runningOrder(home, 170)
	uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewCompleteOrderCommand(scope, "tech", o.ID(), nil, "")
	require.NoError(t, err)

	h := newCompleteHandler(uow, nil)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDelayReasonRequired)
	var required *errs.DelayReasonRequiredError
	require.ErrorAs(t, err, &required)
	assert.Equal(t, 170, required.ElapsedMinutes)
	assert.Equal(t, order.InProgress, o.Status())
	uow.assertAll(t)
}

func TestCompleteOrder_OverThresholdWithReason(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	scope := branch.NewScope(home)
	uow := newMockUoW()
	uow.expectCommit()

	o := runningOrder(home, 170)
	reason, err := catalog.NewDelayReason(kernel.NewUUID(), kernel.NewUUID(), "Waiting for parts", true)
	require.NoError(t, err)
	reasonID := reason.ID()

	uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
	uow.catalog.On("GetDelayReason", mock.Anything, reasonID).Return(reason, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewCompleteOrderCommand(scope, "tech", o.ID(), &reasonID, "supplier was late")
	require.NoError(t, err)

	h := newCompleteHandler(uow, nil)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Completed, o.Status())
	require.NotNil(t, result.ActualDuration)
	assert.Equal(t, 170, *result.ActualDuration)
	assert.True(t, result.ExceededThreshold)
	assert.Equal(t, "supplier was late", o.Overrun().Reason)
	assert.Equal(t, "tech", o.CompletedBy())
	uow.assertAll(t)
}

func TestCompleteOrder_UnknownReasonOverThresholdIsInvalid(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	scope := branch.NewScope(home)
	uow := newMockUoW()
	uow.expectRollback()

	o := runningOrder(home, 125)
	reasonID := kernel.NewUUID()
	uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
	uow.catalog.On("GetDelayReason", mock.Anything, reasonID).Return(nil, notFound("delay_reason")).Once()

	cmd, err := commands.NewCompleteOrderCommand(scope, "tech", o.ID(), &reasonID, "")
	require.NoError(t, err)

	h := newCompleteHandler(uow, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.assertAll(t)
}

func TestCompleteOrder_UnderThresholdNoReason(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	scope := branch.NewScope(home)
	uow := newMockUoW()
	uow.expectCommit()

	o := runningOrder(home, 45)
	uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewCompleteOrderCommand(scope, "tech", o.ID(), nil, "")
	require.NoError(t, err)

	h := newCompleteHandler(uow, nil)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.ExceededThreshold)
	assert.Equal(t, 45, *result.ActualDuration)
	uow.assertAll(t)
}

func TestCompleteOrder_AlreadyCompletedIsIdempotent(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	scope := branch.NewScope(home)
	uow := newMockUoW()
	uow.expectRollback()

	done := restoredOrder(home, order.Completed, lifecycleNow.Add(-3*time.Hour), nil)
	uow.orders.On("Get", mock.Anything, scope, done.ID()).Return(done, nil).Once()

	cmd, err := commands.NewCompleteOrderCommand(scope, "tech", done.ID(), nil, "")
	require.NoError(t, err)

	h := newCompleteHandler(uow, nil)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, done.Number().String(), result.OrderNumber)
	uow.assertAll(t)
}

func TestCompleteOrder_SalesOrderAppliesPendingStock(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	scope := branch.NewScope(home)
	uow := newMockUoW()
	uow.expectCommit()
	adjuster := new(MockStockAdjuster)

	started := lifecycleNow.Add(-20 * time.Minute)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:         kernel.NewUUID(),
		Number:     order.NewNumber(started).String(),
		BranchID:   home,
		CustomerID: kernel.NewUUID(),
		Type:       order.Sales,
		Status:     order.InProgress,
		Priority:   order.Medium,
		Item:       order.Item{Name: "Tyre", Brand: "Bridgestone", Quantity: 2},
		CreatedAt:  started,
		StartedAt:  &started,
	})
	require.NoError(t, err)

	uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
	adjuster.On("ApplyForOrder", mock.Anything, o.ID()).Return(6, nil).Once()

	cmd, err := commands.NewCompleteOrderCommand(scope, "tech", o.ID(), nil, "")
	require.NoError(t, err)

	h := newCompleteHandler(uow, adjuster)
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	adjuster.AssertExpectations(t)
	uow.assertAll(t)
}

func TestQuickStopOrder(t *testing.T) {
	home := kernel.NewUUID()
	scope := branch.NewScope(home)

	t.Run("created order completes with creation as start", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectCommit()
		created := lifecycleNow.Add(-4 * time.Hour)
		o := newTestOrder(home, order.Service, created)
		uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewQuickStopOrderCommand(scope, "tech", o.ID())
		require.NoError(t, err)

		h := commands.NewQuickStopOrderCommandHandler(MockOrderUoWFactory{uow: uow}, nil, fixedClock(lifecycleNow), quietLogger())
		id, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)

		assert.True(t, id.IsEqual(o.ID()))
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.StartedAt())
		assert.Equal(t, created, *o.StartedAt())
		assert.Nil(t, o.Delay().ReasonID, "quick stop skips the delay requirement")
		uow.assertAll(t)
	})

	t.Run("cancelled order cannot be stopped", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectRollback()
		o := restoredOrder(home, order.Cancelled, lifecycleNow.Add(-time.Hour), nil)
		uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewQuickStopOrderCommand(scope, "tech", o.ID())
		require.NoError(t, err)

		h := commands.NewQuickStopOrderCommandHandler(MockOrderUoWFactory{uow: uow}, nil, fixedClock(lifecycleNow), quietLogger())
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.assertAll(t)
	})
}

func TestRecordOverrunReason(t *testing.T) {
	home := kernel.NewUUID()
	scope := branch.NewScope(home)

	t.Run("blank reason is rejected before any lookup", func(t *testing.T) {
		_, err := commands.NewRecordOverrunReasonCommand(scope, "tech", kernel.NewUUID(), "   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("first reporter is kept", func(t *testing.T) {
		o := runningOrder(home, 150)
		require.NoError(t, o.RecordOverrunReason("first", "alice", lifecycleNow.Add(-time.Minute)))

		uow := newMockUoW()
		uow.expectCommit()
		uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewRecordOverrunReasonCommand(scope, "bob", o.ID(), "engine stripped down")
		require.NoError(t, err)

		h := commands.NewRecordOverrunReasonCommandHandler(MockOrderUoWFactory{uow: uow}, fixedClock(lifecycleNow))
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, "engine stripped down", o.Overrun().Reason)
		assert.Equal(t, "alice", o.Overrun().ReportedBy)
		uow.assertAll(t)
	})
}

func TestTransitionOrder(t *testing.T) {
	home := kernel.NewUUID()
	scope := branch.NewScope(home)

	t.Run("start work", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectCommit()
		o := newTestOrder(home, order.Service, lifecycleNow.Add(-time.Minute))
		uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewTransitionOrderCommand(scope, "tech", o.ID(), "in_progress", "")
		require.NoError(t, err)

		h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow: uow}, fixedClock(lifecycleNow))
		status, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.Equal(t, order.InProgress, status)
		assert.Equal(t, lifecycleNow, *o.StartedAt())
		uow.assertAll(t)
	})

	t.Run("cancel records reason", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectCommit()
		o := newTestOrder(home, order.Service, lifecycleNow.Add(-time.Minute))
		uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewTransitionOrderCommand(scope, "desk", o.ID(), "cancelled", "customer left")
		require.NoError(t, err)

		h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow: uow}, fixedClock(lifecycleNow))
		status, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, status)
		assert.Equal(t, "customer left", o.CancellationReason())
		uow.assertAll(t)
	})

	t.Run("terminal order cannot move", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectRollback()
		o := restoredOrder(home, order.Completed, lifecycleNow.Add(-time.Hour), nil)
		uow.orders.On("Get", mock.Anything, scope, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewTransitionOrderCommand(scope, "tech", o.ID(), "overdue", "")
		require.NoError(t, err)

		h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow: uow}, fixedClock(lifecycleNow))
		_, err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.assertAll(t)
	})

	t.Run("constructor rules", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(scope, "tech", kernel.NewUUID(), "cancelled", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewTransitionOrderCommand(scope, "tech", kernel.NewUUID(), "completed", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = commands.NewTransitionOrderCommand(scope, "tech", kernel.NewUUID(), "created", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestProgressStaleOrders(t *testing.T) {
	ctx := t.Context()
	home := kernel.NewUUID()
	uow := newMockUoW()
	uow.expectCommit()

	waiting := newTestOrder(home, order.Service, lifecycleNow.Add(-15*time.Minute))
	running := runningOrder(home, 130)

	uow.orders.On("ListCreatedBefore", mock.Anything, lifecycleNow.Add(-10*time.Minute)).
		Return([]*order.Order{waiting}, nil).Once()
	uow.orders.On("ListInProgressStartedBefore", mock.Anything, lifecycleNow.Add(-2*time.Hour)).
		Return([]*order.Order{running}, nil).Once()
	uow.orders.On("Update", mock.Anything, waiting).Return(nil).Once()
	uow.orders.On("Update", mock.Anything, running).Return(nil).Once()

	h := commands.NewProgressStaleOrdersCommandHandler(MockOrderUoWFactory{uow: uow}, fixedClock(lifecycleNow), 0, quietLogger())
	result, err := h.Handle(ctx)
	require.NoError(t, err)

	assert.Equal(t, commands.ProgressStaleOrdersResult{Started: 1, MarkedOverdue: 1}, result)
	assert.Equal(t, order.InProgress, waiting.Status())
	assert.Equal(t, order.Overdue, running.Status())

	events := running.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "system", events[len(events)-1].Actor)
	uow.assertAll(t)
}

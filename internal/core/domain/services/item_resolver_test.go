package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemCatalog struct{ mock.Mock }

func (m *MockItemCatalog) GetLabourCode(ctx context.Context, id kernel.UUID) (*catalog.LabourCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.LabourCode), args.Error(1)
}

func (m *MockItemCatalog) GetInventoryItem(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func labourCode(t *testing.T, details catalog.LabourCodeDetails, active bool) *catalog.LabourCode {
	t.Helper()
	lc, err := catalog.NewLabourCode(kernel.NewUUID(), "LC-100", details, active)
	require.NoError(t, err)
	return lc
}

func inventoryItem(t *testing.T, name, brand string, active bool) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(kernel.NewUUID(), name, brand, 10, decimal.NewFromInt(100), decimal.NewFromInt(80), active)
	require.NoError(t, err)
	return item
}

func TestItemResolver_LabourCodeWinsOverInventory(t *testing.T) {
	ctx := t.Context()
	lc := labourCode(t, catalog.LabourCodeDetails{ItemName: "Tyre 205/55R16", Brand: "Michelin", Quantity: 4, TireType: "Used"}, true)
	item := inventoryItem(t, "Battery", "Exide", true)
	lcID, itemID := lc.ID(), item.ID()

	source := new(MockItemCatalog)
	source.On("GetLabourCode", ctx, lcID).Return(lc, nil).Once()

	resolved, ok := services.NewItemResolver(quietLogger()).Resolve(ctx, source, services.ItemCandidates{
		LabourCodeID:    &lcID,
		InventoryItemID: &itemID,
	})

	require.True(t, ok)
	assert.Equal(t, services.SourceLabourCode, resolved.Source)
	assert.Equal(t, "Tyre 205/55R16", resolved.Item.Name)
	assert.Equal(t, "Michelin", resolved.Item.Brand)
	assert.Equal(t, 4, resolved.Item.Quantity)
	assert.Equal(t, "Used", resolved.Item.TireType)
	assert.Equal(t, "LC-100", resolved.LabourCode)
	source.AssertNotCalled(t, "GetInventoryItem", mock.Anything, mock.Anything)
}

func TestItemResolver_LabourCodeWithoutItemFallsThrough(t *testing.T) {
	ctx := t.Context()
	lc := labourCode(t, catalog.LabourCodeDetails{Description: "Wheel balancing"}, true)
	lcID := lc.ID()

	source := new(MockItemCatalog)
	source.On("GetLabourCode", ctx, lcID).Return(lc, nil).Once()

	resolved, ok := services.NewItemResolver(quietLogger()).Resolve(ctx, source, services.ItemCandidates{
		LabourCodeID: &lcID,
		ItemName:     " Wiper blade ",
	})

	require.True(t, ok)
	assert.Equal(t, services.SourceManual, resolved.Source)
	assert.Equal(t, "Wiper blade", resolved.Item.Name)
	assert.Equal(t, catalog.DefaultBrand, resolved.Item.Brand)
	assert.Equal(t, 1, resolved.Item.Quantity)
}

func TestItemResolver_SkipsUnknownAndInactive(t *testing.T) {
	ctx := t.Context()
	unknownID := kernel.NewUUID()
	inactive := inventoryItem(t, "Old stock", "Acme", false)
	inactiveID := inactive.ID()

	source := new(MockItemCatalog)
	source.On("GetLabourCode", ctx, unknownID).Return(nil, errs.NewObjectNotFoundError("labour_code", unknownID)).Once()
	source.On("GetInventoryItem", ctx, inactiveID).Return(inactive, nil).Once()

	_, ok := services.NewItemResolver(quietLogger()).Resolve(ctx, source, services.ItemCandidates{
		LabourCodeID:    &unknownID,
		InventoryItemID: &inactiveID,
	})

	assert.False(t, ok)
	source.AssertExpectations(t)
}

func TestItemResolver_InventoryItem(t *testing.T) {
	ctx := t.Context()
	item := inventoryItem(t, "Battery 70Ah", "", true)
	itemID := item.ID()

	source := new(MockItemCatalog)
	source.On("GetInventoryItem", ctx, itemID).Return(item, nil).Once()

	resolved, ok := services.NewItemResolver(quietLogger()).Resolve(ctx, source, services.ItemCandidates{
		InventoryItemID: &itemID,
		Quantity:        2,
	})

	require.True(t, ok)
	assert.Equal(t, services.SourceInventory, resolved.Source)
	assert.Equal(t, "Battery 70Ah", resolved.Item.Name)
	assert.Equal(t, catalog.DefaultBrand, resolved.Item.Brand)
	assert.Equal(t, 2, resolved.Item.Quantity)
}

func TestItemResolver_NothingGiven(t *testing.T) {
	_, ok := services.NewItemResolver(nil).Resolve(t.Context(), new(MockItemCatalog), services.ItemCandidates{})
	assert.False(t, ok)
}

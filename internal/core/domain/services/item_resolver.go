package services

import (
	"context"
	"log/slog"
	"strings"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/inventory"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
)

// ItemCatalog is the reference data the resolver consults.
type ItemCatalog interface {
	GetLabourCode(ctx context.Context, id kernel.UUID) (*catalog.LabourCode, error)
	GetInventoryItem(ctx context.Context, id kernel.UUID) (*inventory.Item, error)
}

// ItemCandidates carries the competing item sources in priority order.
type ItemCandidates struct {
	LabourCodeID    *kernel.UUID
	ItemName        string
	Brand           string
	Quantity        int
	TireType        string
	InventoryItemID *kernel.UUID
}

// ItemSource tells which candidate produced the resolved item.
type ItemSource string

const (
	SourceLabourCode ItemSource = "labour_code"
	SourceManual     ItemSource = "manual"
	SourceInventory  ItemSource = "inventory"
)

// ResolvedItem is the outcome of a successful resolution.
type ResolvedItem struct {
	Item       order.Item
	Source     ItemSource
	LabourCode string
}

// ItemResolver resolves what item or labour an order is about.
//
// The first present and valid candidate wins. A labour code without an item
// name does not count and resolution falls through. Unknown or inactive codes
// and items are logged and skipped; resolution never fails hard.
type ItemResolver struct {
	logger *slog.Logger
}

func NewItemResolver(logger *slog.Logger) ItemResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return ItemResolver{logger: logger.With("component", "ItemResolver")}
}

// Resolve returns the resolved item, or false when no candidate resolves.
func (r ItemResolver) Resolve(ctx context.Context, source ItemCatalog, c ItemCandidates) (ResolvedItem, bool) {
	if c.LabourCodeID != nil {
		if resolved, ok := r.fromLabourCode(ctx, source, *c.LabourCodeID, c); ok {
			return resolved, true
		}
	}

	if name := strings.TrimSpace(c.ItemName); name != "" {
		return ResolvedItem{
			Item: order.Item{
				Name:     name,
				Brand:    brandOrDefault(c.Brand),
				Quantity: quantityOrOne(c.Quantity),
				TireType: c.TireType,
			},
			Source: SourceManual,
		}, true
	}

	if c.InventoryItemID != nil {
		if resolved, ok := r.fromInventory(ctx, source, *c.InventoryItemID, c); ok {
			return resolved, true
		}
	}

	return ResolvedItem{}, false
}

func (r ItemResolver) fromLabourCode(
	ctx context.Context, source ItemCatalog, id kernel.UUID, c ItemCandidates,
) (ResolvedItem, bool) {
	code, err := source.GetLabourCode(ctx, id)
	if err != nil {
		r.logger.WarnContext(ctx, "labour code lookup failed, skipping", "labour_code_id", id.String(), "error", err)
		return ResolvedItem{}, false
	}
	if !code.IsActive() {
		r.logger.WarnContext(ctx, "labour code is inactive, skipping", "code", code.Code())
		return ResolvedItem{}, false
	}
	if !code.HasItem() {
		return ResolvedItem{}, false
	}

	quantity := code.Quantity()
	if c.Quantity > 0 {
		quantity = c.Quantity
	}
	tireType := code.TireType()
	if c.TireType != "" {
		tireType = c.TireType
	}

	return ResolvedItem{
		Item: order.Item{
			Name:     code.ItemName(),
			Brand:    brandOrDefault(code.Brand()),
			Quantity: quantityOrOne(quantity),
			TireType: tireType,
		},
		Source:     SourceLabourCode,
		LabourCode: code.Code(),
	}, true
}

func (r ItemResolver) fromInventory(
	ctx context.Context, source ItemCatalog, id kernel.UUID, c ItemCandidates,
) (ResolvedItem, bool) {
	item, err := source.GetInventoryItem(ctx, id)
	if err != nil {
		r.logger.WarnContext(ctx, "inventory item lookup failed, skipping", "item_id", id.String(), "error", err)
		return ResolvedItem{}, false
	}
	if !item.IsActive() {
		r.logger.WarnContext(ctx, "inventory item is inactive, skipping", "item", item.Name())
		return ResolvedItem{}, false
	}

	return ResolvedItem{
		Item: order.Item{
			Name:     item.Name(),
			Brand:    brandOrDefault(item.Brand()),
			Quantity: quantityOrOne(c.Quantity),
			TireType: c.TireType,
		},
		Source: SourceInventory,
	}, true
}

func brandOrDefault(brand string) string {
	if brand = strings.TrimSpace(brand); brand != "" {
		return brand
	}
	return catalog.DefaultBrand
}

func quantityOrOne(quantity int) int {
	if quantity > 0 {
		return quantity
	}
	return 1
}

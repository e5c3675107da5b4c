package queries

import (
	"context"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCatalogQueryHandler returns active service types, add-ons, inventory
// items and labour codes. Inventory items without a brand are reported as
// catalog.DefaultBrand.
type ListCatalogQueryHandler struct {
	db *gorm.DB
}

func NewListCatalogQueryHandler(db *gorm.DB) ListCatalogQueryHandler {
	return ListCatalogQueryHandler{db: db}
}

func (h ListCatalogQueryHandler) Handle(ctx context.Context, query ListCatalogQuery) (ListCatalogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListCatalogQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	var (
		resp ListCatalogQueryResponse
		err  error
	)

	if resp.ServiceTypes, err = h.offerings(db, "service_types"); err != nil {
		return ListCatalogQueryResponse{}, err
	}
	if resp.ServiceAddons, err = h.offerings(db, "service_addons"); err != nil {
		return ListCatalogQueryResponse{}, err
	}
	if resp.InventoryItems, err = h.inventoryItems(db); err != nil {
		return ListCatalogQueryResponse{}, err
	}
	if resp.LabourCodes, err = queryLabourCodes(db, "is_active ORDER BY code"); err != nil {
		return ListCatalogQueryResponse{}, err
	}
	return resp, nil
}

func (h ListCatalogQueryHandler) offerings(db *gorm.DB, table string) ([]OfferingView, error) {
	rows, err := db.Raw(`
		SELECT id, name, estimated_minutes
		FROM ` + table + `
		WHERE is_active
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OfferingView, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			view OfferingView
		)
		if err = rows.Scan(&id, &view.Name, &view.EstimatedMinutes); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (h ListCatalogQueryHandler) inventoryItems(db *gorm.DB) ([]InventoryItemView, error) {
	rows, err := db.Raw(`
		SELECT id, name, brand, quantity, price
		FROM inventory_items
		WHERE is_active
		ORDER BY brand, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]InventoryItemView, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			item InventoryItemView
		)
		if err = rows.Scan(&id, &item.Name, &item.Brand, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.Brand == "" {
			item.Brand = catalog.DefaultBrand
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// queryLabourCodes selects labour codes matching the condition, which may end
// in ORDER BY and LIMIT clauses.
func queryLabourCodes(db *gorm.DB, condition string, args ...any) ([]LabourCodeView, error) {
	rows, err := db.Raw(`
		SELECT id, code, description, category, item_name, brand, quantity, tire_type
		FROM labour_codes
		WHERE `+condition, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make([]LabourCodeView, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			code LabourCodeView
		)
		err = rows.Scan(
			&id,
			&code.Code,
			&code.Description,
			&code.Category,
			&code.ItemName,
			&code.Brand,
			&code.Quantity,
			&code.TireType,
		)
		if err != nil {
			return nil, err
		}
		if code.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

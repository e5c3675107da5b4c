package http

import (
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// fromAPIUUID keeps a malformed optional id as the zero kernel.UUID, so the
// command constructor reports it as a field error.
func fromAPIUUID(id *openapi_types.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	converted, err := toKernelUUID(*id)
	if err != nil {
		return &kernel.UUID{}
	}
	return &converted
}

func apiUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	converted := id.Bytes()
	return &converted
}

func toStartOrderResponse(result commands.StartOrderResult) servers.StartOrderResponse {
	response := servers.StartOrderResponse{
		Outcome:       string(result.Outcome),
		ExistingOrder: result.ExistingOrder(),
		VehicleId:     apiUUID(result.VehicleID),
	}
	if result.OrderID.Validate() == nil {
		response.OrderId = apiUUID(&result.OrderID)
		number := result.OrderNumber
		status := result.Status.String()
		response.OrderNumber = &number
		response.Status = &status
	}
	if result.CustomerID.Validate() == nil {
		response.CustomerId = apiUUID(&result.CustomerID)
	}
	return response
}

func toCustomerSummary(c *queries.CustomerSummary) *servers.CustomerSummary {
	if c == nil {
		return nil
	}
	return &servers.CustomerSummary{Id: c.ID.Bytes(), FullName: c.FullName, Phone: c.Phone}
}

func toVehicleSummary(v *queries.VehicleSummary) *servers.VehicleSummary {
	if v == nil {
		return nil
	}
	return &servers.VehicleSummary{Id: v.ID.Bytes(), PlateNumber: v.PlateNumber, Make: v.Make, Model: v.Model}
}

func toCatalog(catalog queries.ListCatalogQueryResponse) servers.Catalog {
	response := servers.Catalog{
		ServiceTypes:   toOfferings(catalog.ServiceTypes),
		ServiceAddons:  toOfferings(catalog.ServiceAddons),
		InventoryItems: make([]servers.InventoryItem, len(catalog.InventoryItems)),
		LabourCodes:    make([]servers.LabourCode, len(catalog.LabourCodes)),
	}
	for i, item := range catalog.InventoryItems {
		response.InventoryItems[i] = servers.InventoryItem{
			Id:       item.ID.Bytes(),
			Name:     item.Name,
			Brand:    item.Brand,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		}
	}
	for i, code := range catalog.LabourCodes {
		response.LabourCodes[i] = toLabourCode(code)
	}
	return response
}

func toOfferings(views []queries.OfferingView) []servers.Offering {
	offerings := make([]servers.Offering, len(views))
	for i, view := range views {
		offerings[i] = servers.Offering{Id: view.ID.Bytes(), Name: view.Name, EstimatedMinutes: view.EstimatedMinutes}
	}
	return offerings
}

func toLabourCode(code queries.LabourCodeView) servers.LabourCode {
	return servers.LabourCode{
		Id:          code.ID.Bytes(),
		Code:        code.Code,
		Description: code.Description,
		Category:    code.Category,
		ItemName:    code.ItemName,
		Brand:       code.Brand,
		Quantity:    code.Quantity,
		TireType:    code.TireType,
	}
}

func toStartedOrders(board queries.ListStartedOrdersQueryResponse) servers.StartedOrders {
	response := servers.StartedOrders{
		Orders:  toStartedOrderRows(board.Orders),
		ByPlate: make([]servers.PlateGroup, len(board.ByPlate)),
	}
	for i, group := range board.ByPlate {
		response.ByPlate[i] = servers.PlateGroup{PlateNumber: group.PlateNumber, Orders: toStartedOrderRows(group.Orders)}
	}
	return response
}

func toStartedOrderRows(rows []queries.StartedOrderRow) []servers.StartedOrder {
	out := make([]servers.StartedOrder, len(rows))
	for i, row := range rows {
		out[i] = servers.StartedOrder{
			Id:                row.ID.Bytes(),
			OrderNumber:       row.Number,
			Type:              string(row.Type),
			Status:            row.Status.String(),
			Priority:          string(row.Priority),
			PlateNumber:       row.PlateNumber,
			CustomerName:      row.CustomerName,
			EstimatedDuration: row.EstimatedDuration,
			CreatedAt:         row.CreatedAt,
			StartedAt:         row.StartedAt,
			CompletedAt:       row.CompletedAt,
		}
	}
	return out
}

func toOrderView(view queries.OrderView) servers.OrderView {
	header := view.Header
	response := servers.OrderView{
		Kind:     string(view.Kind),
		ReadOnly: view.ReadOnly,
		Header: servers.OrderHeader{
			Id:                header.ID.Bytes(),
			OrderNumber:       header.Number,
			BranchId:          header.BranchID.Bytes(),
			Status:            header.Status.String(),
			Priority:          string(header.Priority),
			Description:       header.Description,
			EstimatedDuration: header.EstimatedDuration,
			CreatedAt:         header.CreatedAt,
			StartedAt:         header.StartedAt,
			ElapsedMinutes:    header.ElapsedMinutes,
			ExceedsThreshold:  header.ExceedsThreshold,
		},
		Customer: toCustomerSummary(view.Customer),
		Vehicle:  toVehicleSummary(view.Vehicle),
		Delay: servers.DelayDetails{
			ReasonId:          apiUUID(view.Delay.ReasonID),
			ReasonReportedAt:  view.Delay.ReasonReportedAt,
			ReasonReportedBy:  view.Delay.ReasonReportedBy,
			ExceededThreshold: view.Delay.ExceededThreshold,
			OverrunReason:     view.Delay.OverrunReason,
			OverrunReportedAt: view.Delay.OverrunReportedAt,
			OverrunReportedBy: view.Delay.OverrunReportedBy,
		},
	}

	switch {
	case view.Service != nil:
		response.Service = &servers.ServiceDetails{
			Services:   toLineItems(view.Service.Services),
			Addons:     toLineItems(view.Service.Addons),
			Components: toLineItems(view.Service.Components),
		}
	case view.Sales != nil:
		response.Sales = &servers.SalesDetails{
			Item:          toItem(view.Sales.Item),
			Addons:        toLineItems(view.Sales.Addons),
			Components:    toLineItems(view.Sales.Components),
			StockAdjusted: view.Sales.StockAdjusted,
		}
	case view.Inquiry != nil:
		response.Inquiry = &servers.InquiryDetails{
			InquiryType:       view.Inquiry.InquiryType,
			Questions:         view.Inquiry.Questions,
			ContactPreference: view.Inquiry.ContactPreference,
			FollowUpDate:      view.Inquiry.FollowUpDate,
		}
	case view.Labour != nil:
		response.Labour = &servers.LabourDetails{
			LabourCodes: toLineItems(view.Labour.LabourCodes),
			Item:        toItem(view.Labour.Item),
		}
	case view.Generic != nil:
		response.Generic = &servers.GenericDetails{
			LineItems: toLineItems(view.Generic.LineItems),
			Item:      toItem(view.Generic.Item),
		}
	}

	if c := view.Completion; c != nil {
		response.Completion = &servers.CompletionDetails{
			CompletedAt:    c.CompletedAt,
			CompletedBy:    c.CompletedBy,
			ActualDuration: c.ActualDuration,
		}
	}
	if c := view.Cancellation; c != nil {
		response.Cancellation = &servers.CancellationDetails{
			CancelledAt: c.CancelledAt,
			CancelledBy: c.CancelledBy,
			Reason:      c.Reason,
		}
	}

	return response
}

func toLineItems(lines []queries.LineView) []servers.LineItem {
	out := make([]servers.LineItem, len(lines))
	for i, line := range lines {
		out[i] = servers.LineItem{Kind: string(line.Kind), Reference: line.Reference, Note: line.Note}
	}
	return out
}

func toItem(item *queries.ItemView) *servers.Item {
	if item == nil {
		return nil
	}
	return &servers.Item{Name: item.Name, Brand: item.Brand, Quantity: item.Quantity, TireType: item.TireType}
}

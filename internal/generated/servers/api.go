// Package servers holds the HTTP contract described by openapi.yaml: the wire
// types, the ServerInterface and its echo binding. It is kept in the layout
// oapi-codegen produces for the echo target.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StartOrderRequest defines model for StartOrderRequest.
type StartOrderRequest struct {
	EstimatedDuration   *int                `json:"estimated_duration,omitempty"`
	ExistingCustomerId  *openapi_types.UUID `json:"existing_customer_id,omitempty"`
	ForceNewOrder       *bool               `json:"force_new_order,omitempty"`
	OrderType           *string             `json:"order_type,omitempty"`
	PlateNumber         *string             `json:"plate_number,omitempty"`
	ServiceSelection    *[]string           `json:"service_selection,omitempty"`
	UseExistingCustomer *bool               `json:"use_existing_customer,omitempty"`
}

// StartOrderResponse defines model for StartOrderResponse.
type StartOrderResponse struct {
	CustomerId    *openapi_types.UUID `json:"customer_id,omitempty"`
	ExistingOrder bool                `json:"existing_order"`
	OrderId       *openapi_types.UUID `json:"order_id,omitempty"`
	OrderNumber   *string             `json:"order_number,omitempty"`
	Outcome       string              `json:"outcome"`
	Status        *string             `json:"status,omitempty"`
	VehicleId     *openapi_types.UUID `json:"vehicle_id,omitempty"`
}

// CreateOrderResponse defines model for CreateOrderResponse.
type CreateOrderResponse struct {
	OrderId     openapi_types.UUID `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	OrderType   string             `json:"order_type"`
}

// ExtractionResponse defines model for ExtractionResponse.
type ExtractionResponse struct {
	OrderId        string   `json:"order_id"`
	OrderNumber    string   `json:"order_number"`
	UpdatesApplied []string `json:"updates_applied"`
}

// CompleteOrderRequest defines model for CompleteOrderRequest.
type CompleteOrderRequest struct {
	Comments      *string             `json:"comments,omitempty"`
	DelayReasonId *openapi_types.UUID `json:"delay_reason_id,omitempty"`
}

// CompleteOrderResponse defines model for CompleteOrderResponse.
type CompleteOrderResponse struct {
	ActualDuration    *int   `json:"actual_duration,omitempty"`
	ExceededThreshold bool   `json:"exceeded_threshold"`
	OrderNumber       string `json:"order_number"`
}

// OrderRef defines model for OrderRef.
type OrderRef struct {
	OrderId openapi_types.UUID `json:"order_id"`
}

// OverrunReasonRequest defines model for OverrunReasonRequest.
type OverrunReasonRequest struct {
	Reason string `json:"reason"`
}

// TransitionOrderRequest defines model for TransitionOrderRequest.
type TransitionOrderRequest struct {
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	Target             string  `json:"target"`
}

// TransitionOrderResponse defines model for TransitionOrderResponse.
type TransitionOrderResponse struct {
	Status string `json:"status"`
}

// CustomerSummary defines model for CustomerSummary.
type CustomerSummary struct {
	FullName string             `json:"full_name"`
	Id       openapi_types.UUID `json:"id"`
	Phone    string             `json:"phone"`
}

// VehicleSummary defines model for VehicleSummary.
type VehicleSummary struct {
	Id          openapi_types.UUID `json:"id"`
	Make        string             `json:"make"`
	Model       string             `json:"model"`
	PlateNumber string             `json:"plate_number"`
}

// CheckPlateResponse defines model for CheckPlateResponse.
type CheckPlateResponse struct {
	Customer *CustomerSummary `json:"customer,omitempty"`
	Found    bool             `json:"found"`
	Vehicle  *VehicleSummary  `json:"vehicle,omitempty"`
}

// Offering defines model for Offering.
type Offering struct {
	EstimatedMinutes int                `json:"estimated_minutes"`
	Id               openapi_types.UUID `json:"id"`
	Name             string             `json:"name"`
}

// InventoryItem defines model for InventoryItem.
type InventoryItem struct {
	Brand    string             `json:"brand"`
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Price    string             `json:"price"`
	Quantity int                `json:"quantity"`
}

// LabourCode defines model for LabourCode.
type LabourCode struct {
	Brand       string             `json:"brand"`
	Category    string             `json:"category"`
	Code        string             `json:"code"`
	Description string             `json:"description"`
	Id          openapi_types.UUID `json:"id"`
	ItemName    string             `json:"item_name"`
	Quantity    int                `json:"quantity"`
	TireType    string             `json:"tire_type"`
}

// Catalog defines model for Catalog.
type Catalog struct {
	InventoryItems []InventoryItem `json:"inventory_items"`
	LabourCodes    []LabourCode    `json:"labour_codes"`
	ServiceAddons  []Offering      `json:"service_addons"`
	ServiceTypes   []Offering      `json:"service_types"`
}

// StartedOrder defines model for StartedOrder.
type StartedOrder struct {
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	CustomerName      string             `json:"customer_name"`
	EstimatedDuration *int               `json:"estimated_duration,omitempty"`
	Id                openapi_types.UUID `json:"id"`
	OrderNumber       string             `json:"order_number"`
	PlateNumber       string             `json:"plate_number"`
	Priority          string             `json:"priority"`
	StartedAt         *time.Time         `json:"started_at,omitempty"`
	Status            string             `json:"status"`
	Type              string             `json:"type"`
}

// PlateGroup defines model for the by_plate entries of StartedOrders.
type PlateGroup struct {
	Orders      []StartedOrder `json:"orders"`
	PlateNumber string         `json:"plate_number"`
}

// StartedOrders defines model for StartedOrders.
type StartedOrders struct {
	ByPlate []PlateGroup   `json:"by_plate"`
	Orders  []StartedOrder `json:"orders"`
}

// StartedOrdersKpis defines model for StartedOrdersKpis.
type StartedOrdersKpis struct {
	RepeatedVehiclesToday int `json:"repeated_vehicles_today"`
	StartedToday          int `json:"started_today"`
	TotalActive           int `json:"total_active"`
}

// OrderHeader defines model for OrderView.header.
type OrderHeader struct {
	BranchId          openapi_types.UUID `json:"branch_id"`
	CreatedAt         time.Time          `json:"created_at"`
	Description       string             `json:"description"`
	ElapsedMinutes    int                `json:"elapsed_minutes"`
	EstimatedDuration *int               `json:"estimated_duration,omitempty"`
	ExceedsThreshold  bool               `json:"exceeds_threshold"`
	Id                openapi_types.UUID `json:"id"`
	OrderNumber       string             `json:"order_number"`
	Priority          string             `json:"priority"`
	StartedAt         *time.Time         `json:"started_at,omitempty"`
	Status            string             `json:"status"`
}

// LineItem defines model for an order work list entry.
type LineItem struct {
	Kind      string `json:"kind"`
	Note      string `json:"note,omitempty"`
	Reference string `json:"reference"`
}

// Item defines model for the resolved item of an order.
type Item struct {
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	TireType string `json:"tire_type,omitempty"`
}

// ServiceDetails defines model for OrderView.service.
type ServiceDetails struct {
	Addons     []LineItem `json:"addons"`
	Components []LineItem `json:"components"`
	Services   []LineItem `json:"services"`
}

// SalesDetails defines model for OrderView.sales.
type SalesDetails struct {
	Addons        []LineItem `json:"addons"`
	Components    []LineItem `json:"components"`
	Item          *Item      `json:"item,omitempty"`
	StockAdjusted bool       `json:"stock_adjusted"`
}

// InquiryDetails defines model for OrderView.inquiry.
type InquiryDetails struct {
	ContactPreference string     `json:"contact_preference,omitempty"`
	FollowUpDate      *time.Time `json:"follow_up_date,omitempty"`
	InquiryType       string     `json:"inquiry_type,omitempty"`
	Questions         string     `json:"questions,omitempty"`
}

// LabourDetails defines model for OrderView.labour.
type LabourDetails struct {
	Item        *Item      `json:"item,omitempty"`
	LabourCodes []LineItem `json:"labour_codes"`
}

// GenericDetails defines model for OrderView.generic.
type GenericDetails struct {
	Item      *Item      `json:"item,omitempty"`
	LineItems []LineItem `json:"line_items"`
}

// DelayDetails defines model for OrderView.delay.
type DelayDetails struct {
	ExceededThreshold bool                `json:"exceeded_threshold"`
	OverrunReason     string              `json:"overrun_reason,omitempty"`
	OverrunReportedAt *time.Time          `json:"overrun_reported_at,omitempty"`
	OverrunReportedBy string              `json:"overrun_reported_by,omitempty"`
	ReasonId          *openapi_types.UUID `json:"reason_id,omitempty"`
	ReasonReportedAt  *time.Time          `json:"reason_reported_at,omitempty"`
	ReasonReportedBy  string              `json:"reason_reported_by,omitempty"`
}

// CompletionDetails defines model for OrderView.completion.
type CompletionDetails struct {
	ActualDuration *int      `json:"actual_duration,omitempty"`
	CompletedAt    time.Time `json:"completed_at"`
	CompletedBy    string    `json:"completed_by"`
}

// CancellationDetails defines model for OrderView.cancellation.
type CancellationDetails struct {
	CancelledAt time.Time `json:"cancelled_at"`
	CancelledBy string    `json:"cancelled_by"`
	Reason      string    `json:"reason"`
}

// OrderView defines model for OrderView.
type OrderView struct {
	Cancellation *CancellationDetails `json:"cancellation,omitempty"`
	Completion   *CompletionDetails   `json:"completion,omitempty"`
	Customer     *CustomerSummary     `json:"customer,omitempty"`
	Delay        DelayDetails         `json:"delay"`
	Generic      *GenericDetails      `json:"generic,omitempty"`
	Header       OrderHeader          `json:"header"`
	Inquiry      *InquiryDetails      `json:"inquiry,omitempty"`
	Kind         string               `json:"kind"`
	Labour       *LabourDetails       `json:"labour,omitempty"`
	ReadOnly     bool                 `json:"read_only"`
	Sales        *SalesDetails        `json:"sales,omitempty"`
	Service      *ServiceDetails      `json:"service,omitempty"`
	Vehicle      *VehicleSummary      `json:"vehicle,omitempty"`
}

// CreateBranchRequest defines model for CreateBranchRequest.
type CreateBranchRequest struct {
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	ParentId *openapi_types.UUID `json:"parent_id,omitempty"`
}

// BranchRef defines model for BranchRef.
type BranchRef struct {
	Id openapi_types.UUID `json:"id"`
}

// ListStartedOrdersParams defines parameters for ListStartedOrders.
type ListStartedOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
	SortBy *string `form:"sort_by,omitempty" json:"sort_by,omitempty"`
}

// CheckPlateParams defines parameters for CheckPlate.
type CheckPlateParams struct {
	Plate string `form:"plate" json:"plate"`
}

// LookupLabourCodeParams defines parameters for LookupLabourCode.
type LookupLabourCodeParams struct {
	Code     *string `form:"code,omitempty" json:"code,omitempty"`
	ItemName *string `form:"item_name,omitempty" json:"item_name,omitempty"`
	Category *string `form:"category,omitempty" json:"category,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Delete a branch without sub-branches
	// (DELETE /api/v1/branches/{branchId})
	DeleteBranch(ctx echo.Context, branchId openapi_types.UUID) error
	// Create a branch
	// (POST /api/v1/branches)
	CreateBranch(ctx echo.Context) error
	// Active service types, add-ons, inventory items and labour codes
	// (GET /api/v1/catalog)
	ListCatalog(ctx echo.Context) error
	// Find labour codes by code, item name or description
	// (GET /api/v1/catalog/labour-codes/lookup)
	LookupLabourCode(ctx echo.Context, params LookupLabourCodeParams) error
	// Create a fully described order from the intake form
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Start, reuse or find the order of an arriving vehicle
	// (POST /api/v1/orders/start)
	StartOrder(ctx echo.Context) error
	// Order view
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Complete an order, with a delay reason when it ran over
	// (POST /api/v1/orders/{orderId}/complete)
	CompleteOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Apply data extracted from paperwork
	// (PATCH /api/v1/orders/{orderId}/extraction)
	UpdateOrderFromExtraction(ctx echo.Context, orderId openapi_types.UUID) error
	// Record the free-text overrun note
	// (PUT /api/v1/orders/{orderId}/overrun-reason)
	RecordOverrunReason(ctx echo.Context, orderId openapi_types.UUID) error
	// Complete an order immediately without the delay check
	// (POST /api/v1/orders/{orderId}/quick-stop)
	QuickStopOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Start work on, mark overdue or cancel an order
	// (POST /api/v1/orders/{orderId}/transition)
	TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Started orders board
	// (GET /api/v1/started-orders)
	ListStartedOrders(ctx echo.Context, params ListStartedOrdersParams) error
	// Board counters
	// (GET /api/v1/started-orders/kpis)
	GetStartedOrdersKpis(ctx echo.Context) error
	// Look up the owner and vehicle of a plate
	// (GET /api/v1/vehicles/check-plate)
	CheckPlate(ctx echo.Context, params CheckPlateParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// DeleteBranch converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteBranch(ctx echo.Context) error {
	branchId, err := bindUUIDPath(ctx, "branchId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.DeleteBranch(ctx, branchId)
}

// CreateBranch converts echo context to params.
func (w *ServerInterfaceWrapper) CreateBranch(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateBranch(ctx)
}

// ListCatalog converts echo context to params.
func (w *ServerInterfaceWrapper) ListCatalog(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.ListCatalog(ctx)
}

// LookupLabourCode converts echo context to params.
func (w *ServerInterfaceWrapper) LookupLabourCode(ctx echo.Context) error {
	var err error
	ctx.Set(BearerAuthScopes, []string{})

	var params LookupLabourCodeParams

	err = runtime.BindQueryParameter("form", true, false, "code", ctx.QueryParams(), &params.Code)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter code: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "item_name", ctx.QueryParams(), &params.ItemName)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter item_name: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "category", ctx.QueryParams(), &params.Category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter category: %s", err))
	}

	return w.Handler.LookupLabourCode(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateOrder(ctx)
}

// StartOrder converts echo context to params.
func (w *ServerInterfaceWrapper) StartOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.StartOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetOrder(ctx, orderId)
}

// CompleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CompleteOrder(ctx, orderId)
}

// UpdateOrderFromExtraction converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderFromExtraction(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.UpdateOrderFromExtraction(ctx, orderId)
}

// RecordOverrunReason converts echo context to params.
func (w *ServerInterfaceWrapper) RecordOverrunReason(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.RecordOverrunReason(ctx, orderId)
}

// QuickStopOrder converts echo context to params.
func (w *ServerInterfaceWrapper) QuickStopOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.QuickStopOrder(ctx, orderId)
}

// TransitionOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.TransitionOrder(ctx, orderId)
}

// ListStartedOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListStartedOrders(ctx echo.Context) error {
	var err error
	ctx.Set(BearerAuthScopes, []string{})

	var params ListStartedOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter search: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sort_by", ctx.QueryParams(), &params.SortBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sort_by: %s", err))
	}

	return w.Handler.ListStartedOrders(ctx, params)
}

// GetStartedOrdersKpis converts echo context to params.
func (w *ServerInterfaceWrapper) GetStartedOrdersKpis(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetStartedOrdersKpis(ctx)
}

// CheckPlate converts echo context to params.
func (w *ServerInterfaceWrapper) CheckPlate(ctx echo.Context) error {
	var err error
	ctx.Set(BearerAuthScopes, []string{})

	var params CheckPlateParams

	err = runtime.BindQueryParameter("form", true, true, "plate", ctx.QueryParams(), &params.Plate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter plate: %s", err))
	}

	return w.Handler.CheckPlate(ctx, params)
}

func bindUUIDPath(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.DELETE(baseURL+"/api/v1/branches/:branchId", wrapper.DeleteBranch)
	router.POST(baseURL+"/api/v1/branches", wrapper.CreateBranch)
	router.GET(baseURL+"/api/v1/catalog", wrapper.ListCatalog)
	router.GET(baseURL+"/api/v1/catalog/labour-codes/lookup", wrapper.LookupLabourCode)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.POST(baseURL+"/api/v1/orders/start", wrapper.StartOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/complete", wrapper.CompleteOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/extraction", wrapper.UpdateOrderFromExtraction)
	router.PUT(baseURL+"/api/v1/orders/:orderId/overrun-reason", wrapper.RecordOverrunReason)
	router.POST(baseURL+"/api/v1/orders/:orderId/quick-stop", wrapper.QuickStopOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/transition", wrapper.TransitionOrder)
	router.GET(baseURL+"/api/v1/started-orders", wrapper.ListStartedOrders)
	router.GET(baseURL+"/api/v1/started-orders/kpis", wrapper.GetStartedOrdersKpis)
	router.GET(baseURL+"/api/v1/vehicles/check-plate", wrapper.CheckPlate)
}

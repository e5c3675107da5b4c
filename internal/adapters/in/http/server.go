package http

import (
	"context"
	"log/slog"
	"net/http"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Command and query handlers the server dispatches to. The application
// handlers satisfy them directly; tests substitute mocks.
type (
	StartOrderHandler interface {
		Handle(ctx context.Context, cmd commands.StartOrderCommand) (commands.StartOrderResult, error)
	}
	CreateOrderFromModalHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderFromModalCommand) (commands.CreateOrderFromModalResult, error)
	}
	UpdateOrderFromExtractionHandler interface {
		Handle(
			ctx context.Context, cmd commands.UpdateOrderFromExtractionCommand,
		) (commands.UpdateOrderFromExtractionResult, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (commands.CompleteOrderResult, error)
	}
	QuickStopOrderHandler interface {
		Handle(ctx context.Context, cmd commands.QuickStopOrderCommand) (kernel.UUID, error)
	}
	RecordOverrunReasonHandler interface {
		Handle(ctx context.Context, cmd commands.RecordOverrunReasonCommand) error
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (order.Status, error)
	}
	CreateBranchHandler interface {
		Handle(ctx context.Context, cmd commands.CreateBranchCommand) (kernel.UUID, error)
	}
	DeleteBranchHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteBranchCommand) error
	}

	CheckPlateHandler interface {
		Handle(ctx context.Context, query queries.CheckPlateQuery) (queries.CheckPlateQueryResponse, error)
	}
	ListCatalogHandler interface {
		Handle(ctx context.Context, query queries.ListCatalogQuery) (queries.ListCatalogQueryResponse, error)
	}
	LookupLabourCodeHandler interface {
		Handle(ctx context.Context, query queries.LookupLabourCodeQuery) ([]queries.LabourCodeView, error)
	}
	GetOrderViewHandler interface {
		Handle(ctx context.Context, query queries.GetOrderViewQuery) (queries.OrderView, error)
	}
	ListStartedOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListStartedOrdersQuery) (queries.ListStartedOrdersQueryResponse, error)
	}
	GetStartedOrdersKPIsHandler interface {
		Handle(ctx context.Context, query queries.GetStartedOrdersKPIsQuery) (queries.StartedOrdersKPIs, error)
	}
)

// Handlers groups everything the Server dispatches to.
type Handlers struct {
	StartOrder                StartOrderHandler
	CreateOrderFromModal      CreateOrderFromModalHandler
	UpdateOrderFromExtraction UpdateOrderFromExtractionHandler
	CompleteOrder             CompleteOrderHandler
	QuickStopOrder            QuickStopOrderHandler
	RecordOverrunReason       RecordOverrunReasonHandler
	TransitionOrder           TransitionOrderHandler
	CreateBranch              CreateBranchHandler
	DeleteBranch              DeleteBranchHandler

	CheckPlate           CheckPlateHandler
	ListCatalog          ListCatalogHandler
	LookupLabourCode     LookupLabourCodeHandler
	GetOrderView         GetOrderViewHandler
	ListStartedOrders    ListStartedOrdersHandler
	GetStartedOrdersKPIs GetStartedOrdersKPIsHandler
}

// Server implements servers.ServerInterface. It turns requests into commands
// and queries scoped to the caller's branches and maps results back.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// StartOrder handles POST /api/v1/orders/start.
func (s *Server) StartOrder(ctx echo.Context) error {
	var body servers.StartOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	principal, scope := identity(ctx)
	cmd, err := commands.NewStartOrderCommand(scope, principal.UserID(), commands.StartOrderInput{
		Plate:               deref(body.PlateNumber),
		OrderType:           deref(body.OrderType),
		UseExistingCustomer: deref(body.UseExistingCustomer),
		ExistingCustomerID:  fromAPIUUID(body.ExistingCustomerId),
		ServiceSelection:    deref(body.ServiceSelection),
		EstimatedDuration:   body.EstimatedDuration,
		ForceNewOrder:       deref(body.ForceNewOrder),
	})
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to start order")
	}

	result, err := s.handlers.StartOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to start order")
	}

	status := http.StatusOK
	if result.Outcome == commands.OrderCreated {
		status = http.StatusCreated
	}
	return ctx.JSON(status, toStartOrderResponse(result))
}

// CreateOrder handles POST /api/v1/orders with the full intake form.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body commands.CreateOrderFromModalInput
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	principal, scope := identity(ctx)
	cmd, err := commands.NewCreateOrderFromModalCommand(scope, principal.UserID(), body)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to create order")
	}

	result, err := s.handlers.CreateOrderFromModal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.CreateOrderResponse{
		OrderId:     result.OrderID.Bytes(),
		OrderNumber: result.OrderNumber,
		OrderType:   string(result.OrderType),
	})
}

// UpdateOrderFromExtraction handles PATCH /api/v1/orders/{orderId}/extraction.
func (s *Server) UpdateOrderFromExtraction(ctx echo.Context, orderId openapi_types.UUID) error {
	var body commands.UpdateOrderFromExtractionInput
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	id, err := toKernelUUID(orderId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to update order")
	}
	body.OrderID = id

	principal, scope := identity(ctx)
	cmd, err := commands.NewUpdateOrderFromExtractionCommand(scope, principal.UserID(), body)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to update order")
	}

	result, err := s.handlers.UpdateOrderFromExtraction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to update order")
	}

	return ctx.JSON(http.StatusOK, servers.ExtractionResponse{
		OrderId:        result.OrderID,
		OrderNumber:    result.OrderNumber,
		UpdatesApplied: result.UpdatesApplied,
	})
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete. A 422 asks the
// caller to resubmit with a delay reason.
func (s *Server) CompleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.CompleteOrderRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}
	id, err := toKernelUUID(orderId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to complete order")
	}

	principal, scope := identity(ctx)
	cmd, err := commands.NewCompleteOrderCommand(
		scope, principal.UserID(), id, fromAPIUUID(body.DelayReasonId), deref(body.Comments),
	)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to complete order")
	}

	result, err := s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to complete order")
	}

	return ctx.JSON(http.StatusOK, servers.CompleteOrderResponse{
		OrderNumber:       result.OrderNumber,
		ActualDuration:    result.ActualDuration,
		ExceededThreshold: result.ExceededThreshold,
	})
}

// QuickStopOrder handles POST /api/v1/orders/{orderId}/quick-stop.
func (s *Server) QuickStopOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernelUUID(orderId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to stop order")
	}

	principal, scope := identity(ctx)
	cmd, err := commands.NewQuickStopOrderCommand(scope, principal.UserID(), id)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to stop order")
	}

	stopped, err := s.handlers.QuickStopOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to stop order")
	}

	return ctx.JSON(http.StatusOK, servers.OrderRef{OrderId: stopped.Bytes()})
}

// RecordOverrunReason handles PUT /api/v1/orders/{orderId}/overrun-reason.
func (s *Server) RecordOverrunReason(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.OverrunReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	id, err := toKernelUUID(orderId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to record overrun reason")
	}

	principal, scope := identity(ctx)
	cmd, err := commands.NewRecordOverrunReasonCommand(scope, principal.UserID(), id, body.Reason)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to record overrun reason")
	}

	if err = s.handlers.RecordOverrunReason.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err, "Failed to record overrun reason")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transition.
func (s *Server) TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.TransitionOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	id, err := toKernelUUID(orderId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to change order status")
	}

	principal, scope := identity(ctx)
	cmd, err := commands.NewTransitionOrderCommand(
		scope, principal.UserID(), id, body.Target, deref(body.CancellationReason),
	)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to change order status")
	}

	status, err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to change order status")
	}

	return ctx.JSON(http.StatusOK, servers.TransitionOrderResponse{Status: status.String()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernelUUID(orderId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve order")
	}

	_, scope := identity(ctx)
	query, err := queries.NewGetOrderViewQuery(scope, id)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve order")
	}

	view, err := s.handlers.GetOrderView.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// ListStartedOrders handles GET /api/v1/started-orders.
func (s *Server) ListStartedOrders(ctx echo.Context, params servers.ListStartedOrdersParams) error {
	_, scope := identity(ctx)
	query, err := queries.NewListStartedOrdersQuery(scope, deref(params.Status), deref(params.Search), deref(params.SortBy))
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve started orders")
	}

	board, err := s.handlers.ListStartedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve started orders")
	}

	return ctx.JSON(http.StatusOK, toStartedOrders(board))
}

// GetStartedOrdersKpis handles GET /api/v1/started-orders/kpis.
func (s *Server) GetStartedOrdersKpis(ctx echo.Context) error {
	_, scope := identity(ctx)

	kpis, err := s.handlers.GetStartedOrdersKPIs.Handle(ctx.Request().Context(), queries.NewGetStartedOrdersKPIsQuery(scope))
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve counters")
	}

	return ctx.JSON(http.StatusOK, servers.StartedOrdersKpis{
		TotalActive:           kpis.TotalActive,
		StartedToday:          kpis.StartedToday,
		RepeatedVehiclesToday: kpis.RepeatedVehiclesToday,
	})
}

// CheckPlate handles GET /api/v1/vehicles/check-plate.
func (s *Server) CheckPlate(ctx echo.Context, params servers.CheckPlateParams) error {
	_, scope := identity(ctx)

	found, err := s.handlers.CheckPlate.Handle(ctx.Request().Context(), queries.NewCheckPlateQuery(scope, params.Plate))
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to check plate")
	}

	return ctx.JSON(http.StatusOK, servers.CheckPlateResponse{
		Found:    found.Found,
		Customer: toCustomerSummary(found.Customer),
		Vehicle:  toVehicleSummary(found.Vehicle),
	})
}

// ListCatalog handles GET /api/v1/catalog.
func (s *Server) ListCatalog(ctx echo.Context) error {
	catalog, err := s.handlers.ListCatalog.Handle(ctx.Request().Context(), queries.NewListCatalogQuery())
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to retrieve catalog")
	}

	return ctx.JSON(http.StatusOK, toCatalog(catalog))
}

// LookupLabourCode handles GET /api/v1/catalog/labour-codes/lookup.
func (s *Server) LookupLabourCode(ctx echo.Context, params servers.LookupLabourCodeParams) error {
	query, err := queries.NewLookupLabourCodeQuery(deref(params.Code), deref(params.ItemName), deref(params.Category))
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to look up labour code")
	}

	codes, err := s.handlers.LookupLabourCode.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to look up labour code")
	}

	response := make([]servers.LabourCode, len(codes))
	for i, code := range codes {
		response[i] = toLabourCode(code)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateBranch handles POST /api/v1/branches.
func (s *Server) CreateBranch(ctx echo.Context) error {
	var body servers.CreateBranchRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	principal, _ := identity(ctx)
	cmd, err := commands.NewCreateBranchCommand(principal, body.Name, body.Code, fromAPIUUID(body.ParentId))
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to create branch")
	}

	id, err := s.handlers.CreateBranch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to create branch")
	}

	return ctx.JSON(http.StatusCreated, servers.BranchRef{Id: id.Bytes()})
}

// DeleteBranch handles DELETE /api/v1/branches/{branchId}.
func (s *Server) DeleteBranch(ctx echo.Context, branchId openapi_types.UUID) error {
	id, err := toKernelUUID(branchId)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to delete branch")
	}

	principal, _ := identity(ctx)
	cmd, err := commands.NewDeleteBranchCommand(principal, id)
	if err != nil {
		return writeError(ctx, s.logger, err, "Failed to delete branch")
	}

	if err = s.handlers.DeleteBranch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err, "Failed to delete branch")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

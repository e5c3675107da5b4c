package cmd

import (
	"log/slog"

	httpin "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/postgres"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/jobs"
	"tracker/internal/pkg/observability"

	"gorm.io/gorm"
)

// CompositionRoot builds handlers from the shared infrastructure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.VehicleLocker
	clock      ports.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot counts every published order event before handing it to
// publisher.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	locker ports.VehicleLocker,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, metrics.InstrumentPublisher(publisher)),
		locker:     locker,
		clock:      ports.SystemClock,
		metrics:    metrics,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) intakeUoWFactory() commands.IntakeUoWFactory {
	return FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) branchUoWFactory() commands.BranchUoWFactory {
	return FuncBranchUoWFactory(func() commands.BranchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStockAdjuster() commands.StockAdjuster {
	return commands.NewStockAdjuster(c.inventoryUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.intakeUoWFactory(), c.locker, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderFromModalCommandHandler() commands.CreateOrderFromModalCommandHandler {
	return commands.NewCreateOrderFromModalCommandHandler(
		c.intakeUoWFactory(),
		services.NewItemResolver(c.logger),
		c.CreateStockAdjuster(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderFromExtractionCommandHandler() commands.UpdateOrderFromExtractionCommandHandler {
	return commands.NewUpdateOrderFromExtractionCommandHandler(
		c.intakeUoWFactory(),
		services.NewItemResolver(c.logger),
		c.logger,
	)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(
		c.orderUoWFactory(),
		services.NewDelayTracker(c.logger),
		c.CreateStockAdjuster(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateQuickStopOrderCommandHandler() commands.QuickStopOrderCommandHandler {
	return commands.NewQuickStopOrderCommandHandler(c.orderUoWFactory(), c.CreateStockAdjuster(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateRecordOverrunReasonCommandHandler() commands.RecordOverrunReasonCommandHandler {
	return commands.NewRecordOverrunReasonCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateProgressStaleOrdersCommandHandler() commands.ProgressStaleOrdersCommandHandler {
	return commands.NewProgressStaleOrdersCommandHandler(
		c.orderUoWFactory(), c.clock, c.config.AutoProgressAfter, c.logger,
	)
}

func (c *CompositionRoot) CreateCreateBranchCommandHandler() commands.CreateBranchCommandHandler {
	return commands.NewCreateBranchCommandHandler(c.branchUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDeleteBranchCommandHandler() commands.DeleteBranchCommandHandler {
	return commands.NewDeleteBranchCommandHandler(c.branchUoWFactory(), c.logger)
}

// CreateScopeResolver reads the branch tree outside any transaction.
func (c *CompositionRoot) CreateScopeResolver() branch.Resolver {
	return branch.NewResolver(c.uowFactory.Create().BranchRepository())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweeper := c.CreateProgressStaleOrdersCommandHandler()
	return jobs.NewJobManager(&sweeper, c.config.SweepSchedule, c.metrics, c.logger)
}

// CreateHandlers returns every HTTP-facing handler.
func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	startOrder := c.CreateStartOrderCommandHandler()
	createOrder := c.CreateCreateOrderFromModalCommandHandler()
	updateOrder := c.CreateUpdateOrderFromExtractionCommandHandler()
	completeOrder := c.CreateCompleteOrderCommandHandler()
	quickStop := c.CreateQuickStopOrderCommandHandler()
	overrun := c.CreateRecordOverrunReasonCommandHandler()
	transition := c.CreateTransitionOrderCommandHandler()
	createBranch := c.CreateCreateBranchCommandHandler()
	deleteBranch := c.CreateDeleteBranchCommandHandler()

	return httpin.Handlers{
		StartOrder:                &startOrder,
		CreateOrderFromModal:      &createOrder,
		UpdateOrderFromExtraction: &updateOrder,
		CompleteOrder:             &completeOrder,
		QuickStopOrder:            &quickStop,
		RecordOverrunReason:       &overrun,
		TransitionOrder:           &transition,
		CreateBranch:              &createBranch,
		DeleteBranch:              &deleteBranch,

		CheckPlate:           queries.NewCheckPlateQueryHandler(c.gormDB),
		ListCatalog:          queries.NewListCatalogQueryHandler(c.gormDB),
		LookupLabourCode:     queries.NewLookupLabourCodeQueryHandler(c.gormDB),
		GetOrderView:         queries.NewGetOrderViewQueryHandler(c.uowFactory, c.clock),
		ListStartedOrders:    queries.NewListStartedOrdersQueryHandler(c.gormDB, c.clock),
		GetStartedOrdersKPIs: queries.NewGetStartedOrdersKPIsQueryHandler(c.gormDB, c.clock),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncBranchUoWFactory func() commands.BranchUoW

func (f FuncBranchUoWFactory) Create() commands.BranchUoW {
	return f()
}

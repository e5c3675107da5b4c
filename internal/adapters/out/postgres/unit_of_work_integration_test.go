package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "tracker/internal/adapters/out/postgres"
	"tracker/internal/adapters/out/postgres/inventoryrepo"
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/customer"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/vehicle"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL database, where row locks and constraints are enforced.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *recordingPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE orders, order_line_items, customers, vehicles,
		branches, inventory_items`).Error
	suite.Require().NoError(err)

	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// TestUnitOfWork_IntakeIsAtomic writes a customer, vehicle and order in one
// transaction and checks that a failure discards all three.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_IntakeIsAtomic() {
	ctx := context.Background()
	home := kernel.NewUUID()
	plate, err := kernel.NewPlateNumber("KBZ 001A")
	suite.Require().NoError(err)

	c, err := customer.NewPlateCustomer(kernel.NewUUID(), home, plate)
	suite.Require().NoError(err)
	v, err := vehicle.NewVehicle(kernel.NewUUID(), c.ID(), home, plate)
	suite.Require().NoError(err)
	vehicleID := v.ID()
	o, err := order.NewOrder(kernel.NewUUID(), home, c.ID(), &vehicleID, order.Service, order.Medium, time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	scope := branch.NewScope(home)
	_, err = suite.factory.Create().CustomerRepository().Get(ctx, scope, c.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.factory.Create().VehicleRepository().FindByPlate(ctx, scope, plate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.publisher.published())

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().FindLatestByVehicle(ctx, vehicleID, order.OpenStatuses()...)
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.Len(suite.publisher.published(), 1)
}

// TestUnitOfWork_DuplicatePlateInBranch relies on the unique index that backs
// intake dedup when the lock has expired.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicatePlateInBranch() {
	ctx := context.Background()
	home := kernel.NewUUID()
	plate, err := kernel.NewPlateNumber("KCA 777C")
	suite.Require().NoError(err)

	first, err := vehicle.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), home, plate)
	suite.Require().NoError(err)
	second, err := vehicle.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), home, plate)
	suite.Require().NoError(err)
	elsewhere, err := vehicle.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), plate)
	suite.Require().NoError(err)

	repo := suite.factory.Create().VehicleRepository()
	suite.Require().NoError(repo.Add(ctx, first))
	suite.Require().Error(repo.Add(ctx, second))
	suite.Require().NoError(repo.Add(ctx, elsewhere))
}

// TestUnitOfWork_ConcurrentStockAdjustments checks that the row lock taken by
// FindByNameAndBrand serialises concurrent decrements.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentStockAdjustments() {
	ctx := context.Background()
	id := uuid.New()
	suite.Require().NoError(suite.db.Create(&inventoryrepo.ItemDTO{
		ID: id, Name: "Brake Pads", Brand: "Brembo", Quantity: 10,
		Price: decimal.RequireFromString("45.00"), CostPrice: decimal.RequireFromString("30.00"), IsActive: true,
	}).Error)

	const workers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				errCh <- err
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			item, err := uow.InventoryRepository().FindByNameAndBrand(ctx, "brake pads", "brembo")
			if err != nil {
				errCh <- err
				return
			}
			if _, err := item.Adjust(-1); err != nil {
				errCh <- err
				return
			}
			if err := uow.InventoryRepository().Update(ctx, item); err != nil {
				errCh <- err
				return
			}
			errCh <- uow.Commit(ctx)
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		suite.Require().NoError(err)
	}

	var dto inventoryrepo.ItemDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", id).Error)
	suite.Equal(10-workers, dto.Quantity)
}

// TestUnitOfWork_BranchHierarchy exercises the directory the scope resolver reads.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_BranchHierarchy() {
	ctx := context.Background()
	hq, err := branch.NewBranch(kernel.NewUUID(), "Mombasa", "MSA", nil)
	suite.Require().NoError(err)
	sub, err := branch.NewBranch(kernel.NewUUID(), "Nyali", "MSA-N", hq)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BranchRepository().Add(ctx, hq))
	suite.Require().NoError(uow.BranchRepository().Add(ctx, sub))
	suite.Require().NoError(uow.Commit(ctx))

	resolver := branch.NewResolver(suite.factory.Create().BranchRepository())
	principal, err := branch.NewPrincipal("manager", ptr(hq.ID()))
	suite.Require().NoError(err)

	scope, err := resolver.VisibleBranchIDs(ctx, principal)
	suite.Require().NoError(err)
	suite.True(scope.Contains(hq.ID()))
	suite.True(scope.Contains(sub.ID()))
}

func ptr[T any](v T) *T {
	return &v
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/postgres/branchrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/schedulerepo"
	"parcelhub/internal/adapters/out/postgres/shipmentrepo"
	"parcelhub/internal/adapters/out/postgres/vehiclerepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&branchrepo.BranchDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.PaymentDTO{},
		&vehiclerepo.VehicleDTO{},
		&schedulerepo.ScheduleDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.LoadDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE branches, parcels, payments, vehicles, schedules, shipments, shipment_loads",
	).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.ParcelRepository(), "First instance should provide parcel repository")
	suite.NotNil(uow1.VehicleRepository(), "First instance should provide vehicle repository")
	suite.NotNil(uow2.ScheduleRepository(), "Second instance should provide schedule repository")
	suite.NotNil(uow2.ShipmentRepository(), "Second instance should provide shipment repository")
	suite.NotNil(uow2.BranchRepository(), "Second instance should provide branch repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_CommitPersistsParcel verifies repository operations within a
// committed transaction become visible outside it.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsParcel() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testParcel := suite.createTestParcel()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, testParcel))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Equal(testParcel.TrackingNo(), loaded.TrackingNo())
	suite.Equal(parcel.StatusOrderPlaced, loaded.Status())
	suite.Equal(testParcel.Payment().Amount(), loaded.Payment().Amount())
}

// TestUnitOfWork_RollbackDiscardsChanges verifies rolled back writes never
// reach the database.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testParcel := suite.createTestParcel()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, testParcel))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_MultiRepositoryTransaction verifies a transaction spanning the
// parcel, vehicle, and schedule repositories commits atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testParcel := suite.createTestParcel()
	testVehicle := suite.createTestVehicle()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, testParcel))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, testVehicle))

	schedule, err := vehicle.NewSchedule(
		kernel.NewUUID(), testVehicle.ID(),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		vehicle.TimeSlotMorning, vehicle.ScheduleTypePickup,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(schedule.Assign(testVehicle, testParcel.ID(), testParcel.Size()))
	suite.Require().NoError(uow.ScheduleRepository().Add(ctx, schedule))

	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().ScheduleRepository().Get(ctx, schedule.ID())
	suite.Require().NoError(err)
	suite.True(loaded.Contains(testParcel.ID()))
	suite.InDelta(testParcel.Volume(), loaded.Totals().Volume, 0.0001)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestParcel() *parcel.Parcel {
	now := time.Now().UTC()

	sender, err := parcel.NewContact("Aung Kyaw", "+95911111111", "12 Hledan Rd, Yangon")
	suite.Require().NoError(err)
	receiver, err := parcel.NewContact("Su Myat", "+95922222222", "45 78th St, Mandalay")
	suite.Require().NoError(err)

	payment, err := parcel.NewPayment(
		kernel.NewUUID(), parcel.PaymentCOD, parcel.PayerReceiver, 1155, now)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		parcel.NewTrackingNo(now),
		"documents",
		kernel.SizeSmall,
		parcel.SubmittingPickup,
		parcel.ReceivingDoorstep,
		parcel.ShippingStandard,
		sender,
		receiver,
		"B001",
		"B003",
		payment,
		now,
	)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestVehicle() *vehicle.Vehicle {
	v, err := vehicle.NewVehicle(
		kernel.NewUUID(), "YGN-7A-1234", vehicle.VehicleTypePickupDelivery,
		[]string{"B001", "B003"}, 10, 50,
	)
	suite.Require().NoError(err)
	return v
}

// TestUnitOfWorkIntegrationTestSuite runs the integration test suite.
func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

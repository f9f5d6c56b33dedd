package vehiclerepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/vehiclerepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// VehicleRepositoryIntegrationTestSuite provides integration tests for VehicleRepository
// using PostgreSQL containers to verify persistence and the availability compare-and-set.
type VehicleRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *vehiclerepo.GormVehicleRepository
	tracker    *MockAggregateTracker
}

func (suite *VehicleRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&vehiclerepo.VehicleDTO{}))
}

func (suite *VehicleRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE vehicles").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = vehiclerepo.NewGormVehicleRepository(suite.db, suite.tracker)
}

func (suite *VehicleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *VehicleRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testVehicle := suite.createTestVehicle("YGN-7A-1234", []string{"B001", "B003"})

	suite.Require().NoError(suite.repository.Add(ctx, testVehicle))

	loaded, err := suite.repository.Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	suite.Equal("YGN-7A-1234", loaded.RegistrationNo())
	suite.Equal(vehicle.VehicleTypeShipment, loaded.Type())
	suite.Equal([]string{"B001", "B003"}, loaded.BranchCodes())
	suite.True(loaded.IsAvailable())
	suite.True(loaded.LoadedAvailability())
}

func (suite *VehicleRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *VehicleRepositoryIntegrationTestSuite) TestGetByRegistrationNo() {
	ctx := context.Background()
	testVehicle := suite.createTestVehicle("MDY-2B-5678", []string{"B002"})
	suite.Require().NoError(suite.repository.Add(ctx, testVehicle))

	loaded, err := suite.repository.GetByRegistrationNo(ctx, "MDY-2B-5678")
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testVehicle))

	_, err = suite.repository.GetByRegistrationNo(ctx, "MDY-9Z-0000")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUpdate_AvailabilityCompareAndSet is the core concurrency guarantee: two
// aggregates loaded from the same free vehicle cannot both claim it. The
// second update must see the flipped flag and fail.
func (suite *VehicleRepositoryIntegrationTestSuite) TestUpdate_AvailabilityCompareAndSet() {
	ctx := context.Background()
	testVehicle := suite.createTestVehicle("YGN-9C-4321", []string{"B001"})
	suite.Require().NoError(suite.repository.Add(ctx, testVehicle))

	first, err := suite.repository.Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Claim())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Claim())
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVehicleUnavailable)
}

func (suite *VehicleRepositoryIntegrationTestSuite) TestUpdate_ReleaseMakesVehicleClaimableAgain() {
	ctx := context.Background()
	testVehicle := suite.createTestVehicle("YGN-5D-1111", []string{"B001"})
	suite.Require().NoError(suite.repository.Add(ctx, testVehicle))

	claimed, err := suite.repository.Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(claimed.Claim())
	suite.Require().NoError(suite.repository.Update(ctx, claimed))

	released, err := suite.repository.Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	released.Release()
	suite.Require().NoError(suite.repository.Update(ctx, released))

	next, err := suite.repository.Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(next.Claim())
	suite.Require().NoError(suite.repository.Update(ctx, next))
}

func (suite *VehicleRepositoryIntegrationTestSuite) TestUpdate_MissingVehicle() {
	ctx := context.Background()
	testVehicle := suite.createTestVehicle("YGN-0X-0000", []string{"B001"})

	err := suite.repository.Update(ctx, testVehicle)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *VehicleRepositoryIntegrationTestSuite) TestGetAllAvailableByBranch() {
	ctx := context.Background()

	serving, err := vehicle.NewVehicle(
		kernel.NewUUID(), "YGN-1A-0001", vehicle.VehicleTypePickupDelivery,
		[]string{"B001", "B002"}, 4, 30,
	)
	suite.Require().NoError(err)
	elsewhere, err := vehicle.NewVehicle(
		kernel.NewUUID(), "YGN-1A-0002", vehicle.VehicleTypePickupDelivery,
		[]string{"B003"}, 4, 30,
	)
	suite.Require().NoError(err)
	wrongType := suite.createTestVehicle("YGN-1A-0003", []string{"B001"})

	suite.Require().NoError(suite.repository.Add(ctx, serving))
	suite.Require().NoError(suite.repository.Add(ctx, elsewhere))
	suite.Require().NoError(suite.repository.Add(ctx, wrongType))

	free, err := suite.repository.GetAllAvailableByBranch(ctx, "B001", vehicle.VehicleTypePickupDelivery)
	suite.Require().NoError(err)
	suite.Require().Len(free, 1)
	suite.Equal("YGN-1A-0001", free[0].RegistrationNo())

	// A claimed vehicle drops out of the pool
	suite.Require().NoError(serving.Claim())
	suite.Require().NoError(suite.repository.Update(ctx, serving))

	free, err = suite.repository.GetAllAvailableByBranch(ctx, "B001", vehicle.VehicleTypePickupDelivery)
	suite.Require().NoError(err)
	suite.Empty(free)
}

func (suite *VehicleRepositoryIntegrationTestSuite) createTestVehicle(registrationNo string, branches []string) *vehicle.Vehicle {
	v, err := vehicle.NewVehicle(
		kernel.NewUUID(), registrationNo, vehicle.VehicleTypeShipment, branches, 10, 50,
	)
	suite.Require().NoError(err)
	return v
}

// TestVehicleRepositoryIntegrationTestSuite runs the integration test suite.
func TestVehicleRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(VehicleRepositoryIntegrationTestSuite))
}

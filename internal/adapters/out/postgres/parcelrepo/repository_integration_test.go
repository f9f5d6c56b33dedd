package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
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

// ParcelRepositoryIntegrationTestSuite provides integration tests for ParcelRepository
// using PostgreSQL containers to verify persistence of the aggregate and its payment.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.PaymentDTO{}))
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels, payments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = parcelrepo.NewGormParcelRepository(suite.db, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testParcel := suite.createTestParcel(parcel.SubmittingPickup, parcel.PaymentCOD)

	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	suite.Equal(testParcel.TrackingNo(), loaded.TrackingNo())
	suite.Equal(parcel.StatusOrderPlaced, loaded.Status())
	suite.Equal(kernel.SizeSmall, loaded.Size())
	suite.Equal("Aung Kyaw", loaded.Sender().Name())
	suite.Equal("B003", loaded.ToBranch())
	suite.Equal(parcel.PaymentCOD, loaded.Payment().Method())
	suite.Equal(parcel.PaymentPending, loaded.Payment().Status())
	suite.Equal(int64(1155), loaded.Payment().Amount())
	suite.WithinDuration(testParcel.Stamps().PlacedAt, loaded.Stamps().PlacedAt, time.Millisecond)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingNo() {
	ctx := context.Background()
	testParcel := suite.createTestParcel(parcel.SubmittingPickup, parcel.PaymentOnline)
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	loaded, err := suite.repository.GetByTrackingNo(ctx, testParcel.TrackingNo())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testParcel))

	_, err = suite.repository.GetByTrackingNo(ctx, "PT20260101deadbeef")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUpdate_TransitionAndSettlement walks a COD parcel to Delivered and
// verifies both the status and the auto-settled payment survive the round trip.
func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_TransitionAndSettlement() {
	ctx := context.Background()
	now := time.Now().UTC()
	testParcel := suite.createTestParcel(parcel.SubmittingPickup, parcel.PaymentCOD)
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	for _, event := range []parcel.Event{
		parcel.EventPickupScheduled,
		parcel.EventPickedUp,
		parcel.EventArrivedAtHub,
		parcel.EventShipmentAssigned,
		parcel.EventDeparted,
		parcel.EventArrivedAtCollectionCenter,
		parcel.EventOutForDelivery,
		parcel.EventDelivered,
	} {
		now = now.Add(time.Hour)
		suite.Require().NoError(testParcel.ApplyEvent(event, now))
		suite.Require().NoError(suite.repository.Update(ctx, testParcel))
	}

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusDelivered, loaded.Status())
	suite.Equal(parcel.PaymentPaid, loaded.Payment().Status())
	suite.NotNil(loaded.Payment().PaidAt())
	suite.NotNil(loaded.Stamps().DeliveredAt)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAllByShipment() {
	ctx := context.Background()
	now := time.Now().UTC()
	shipmentID := kernel.NewUUID()

	onShipment := suite.createTestParcel(parcel.SubmittingBranch, parcel.PaymentOnline)
	suite.Require().NoError(onShipment.ApplyEvent(parcel.EventArrivedAtHub, now))
	suite.Require().NoError(onShipment.AssignToShipment(shipmentID, now))

	other := suite.createTestParcel(parcel.SubmittingBranch, parcel.PaymentOnline)

	suite.Require().NoError(suite.repository.Add(ctx, onShipment))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	loaded, err := suite.repository.GetAllByShipment(ctx, shipmentID)
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 1)
	suite.True(loaded[0].IsEqual(onShipment))
	suite.Require().NotNil(loaded[0].Shipment())
	suite.True(loaded[0].Shipment().IsEqual(shipmentID))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAllPendingPickup() {
	ctx := context.Background()
	now := time.Now().UTC()

	pending := suite.createTestParcel(parcel.SubmittingPickup, parcel.PaymentCOD)
	dropOff := suite.createTestParcel(parcel.SubmittingDropOff, parcel.PaymentCOD)
	scheduled := suite.createTestParcel(parcel.SubmittingPickup, parcel.PaymentCOD)
	suite.Require().NoError(scheduled.ApplyEvent(parcel.EventPickupScheduled, now))

	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.Require().NoError(suite.repository.Add(ctx, dropOff))
	suite.Require().NoError(suite.repository.Add(ctx, scheduled))

	loaded, err := suite.repository.GetAllPendingPickup(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 1)
	suite.True(loaded[0].IsEqual(pending))
}

func (suite *ParcelRepositoryIntegrationTestSuite) createTestParcel(
	submittingType parcel.SubmittingType,
	method parcel.PaymentMethod,
) *parcel.Parcel {
	now := time.Now().UTC()

	sender, err := parcel.NewContact("Aung Kyaw", "+95911111111", "12 Hledan Rd, Yangon")
	suite.Require().NoError(err)
	receiver, err := parcel.NewContact("Su Myat", "+95922222222", "45 78th St, Mandalay")
	suite.Require().NoError(err)

	payer := parcel.PayerSender
	if method == parcel.PaymentCOD {
		payer = parcel.PayerReceiver
	}
	payment, err := parcel.NewPayment(kernel.NewUUID(), method, payer, 1155, now)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		parcel.NewTrackingNo(now),
		"documents",
		kernel.SizeSmall,
		submittingType,
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

// TestParcelRepositoryIntegrationTestSuite runs the integration test suite.
func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}

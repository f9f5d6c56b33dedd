package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingNo(ctx context.Context, trackingNo string) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllPendingPickup(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByRegistrationNo(ctx context.Context, registrationNo string) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, registrationNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetAllAvailableByBranch(
	ctx context.Context, branchCode string, vehicleType vehicle.VehicleType,
) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, branchCode, vehicleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) Add(ctx context.Context, aggregate *vehicle.Schedule) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, aggregate *vehicle.Schedule) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetByBucket(
	ctx context.Context, vehicleID kernel.UUID, date time.Time,
	slot vehicle.TimeSlot, scheduleType vehicle.ScheduleType,
) (*vehicle.Schedule, error) {
	args := m.Called(ctx, vehicleID, date, slot, scheduleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetAllByVehicleInRange(
	ctx context.Context, vehicleID kernel.UUID, from, to time.Time,
) ([]*vehicle.Schedule, error) {
	args := m.Called(ctx, vehicleID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Schedule), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetActiveByDriver(ctx context.Context, driverID string) (*shipment.Shipment, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockParcelUoW struct{ mock.Mock }

func (m *MockParcelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockScheduleUoW struct{ mock.Mock }

func (m *MockScheduleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockScheduleUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockScheduleUoW) ScheduleRepository() ports.ScheduleRepository {
	args := m.Called()
	return args.Get(0).(ports.ScheduleRepository)
}

type MockScheduleUoWFactory struct{ mock.Mock }

func (m *MockScheduleUoWFactory) Create() commands.ScheduleUoW {
	args := m.Called()
	return args.Get(0).(commands.ScheduleUoW)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockShipmentUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishParcelStatusChanged(ctx context.Context, event ports.ParcelStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishShipmentAdvanced(ctx context.Context, event ports.ShipmentAdvanced) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) Get(ctx context.Context, trackingNo string) (ports.TrackingSnapshot, bool, error) {
	args := m.Called(ctx, trackingNo)
	return args.Get(0).(ports.TrackingSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockStatusCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockStatusCache) Invalidate(ctx context.Context, trackingNo string) error {
	args := m.Called(ctx, trackingNo)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func handlerTestGraph() *services.RouteGraph {
	return services.NewRouteGraph(map[string]map[string]float64{
		"B001": {"B002": 42, "B003": 115.5},
		"B002": {"B001": 42},
		"B003": {"B001": 118},
	})
}

func parcelTime() time.Time {
	return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
}

// placedParcel builds a freshly placed parcel with the given intake and
// payment arrangement.
func placedParcel(
	t *testing.T,
	submittingType parcel.SubmittingType,
	method parcel.PaymentMethod,
	paidBy parcel.Payer,
) *parcel.Parcel {
	t.Helper()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	payment, err := parcel.NewPayment(kernel.NewUUID(), method, paidBy, 1155, now)
	require.NoError(t, err)
	sender, err := parcel.NewContact("Aung Kyaw", "+95911111111", "12 Hledan Rd, Yangon")
	require.NoError(t, err)
	receiver, err := parcel.NewContact("Su Myat", "+95922222222", "7 Main St, Mandalay")
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.NewTrackingNo(now), "documents",
		kernel.SizeSmall, submittingType, parcel.ReceivingDoorstep, parcel.ShippingStandard,
		sender, receiver, "B001", "B003", payment, now)
	require.NoError(t, err)
	return p
}

func pickupVehicle(t *testing.T, capableVolume, capableWeight float64) *vehicle.Vehicle {
	t.Helper()

	v, err := vehicle.NewVehicle(kernel.NewUUID(), "YGN-7A-1234",
		vehicle.VehicleTypePickupDelivery, []string{"B001"}, capableVolume, capableWeight)
	require.NoError(t, err)
	return v
}

func shipmentVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()

	v, err := vehicle.NewVehicle(kernel.NewUUID(), "MDY-2B-5678",
		vehicle.VehicleTypeShipment, []string{"B001", "B003"}, 40, 800)
	require.NoError(t, err)
	return v
}

// pendingShipment consolidates hub parcels into a Pending shipment together
// with the parcels it carries.
func pendingShipment(t *testing.T, parcelCount int) (*shipment.Shipment, []*parcel.Parcel) {
	t.Helper()

	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	parcels := make([]*parcel.Parcel, 0, parcelCount)
	for i := 0; i < parcelCount; i++ {
		p := placedParcel(t, parcel.SubmittingBranch, parcel.PaymentOnline, parcel.PayerSender)
		require.NoError(t, p.ApplyEvent(parcel.EventArrivedAtHub, now))
		parcels = append(parcels, p)
	}

	consolidator := services.NewShipmentConsolidator(handlerTestGraph())
	s, err := consolidator.Consolidate(kernel.NewUUID(), parcels, "B001", "B003", now)
	require.NoError(t, err)
	return s, parcels
}

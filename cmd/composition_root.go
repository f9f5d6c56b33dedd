package cmd

import (
	"log/slog"
	"time"

	"parcelhub/internal/adapters/out/kafka"
	"parcelhub/internal/adapters/out/postgres"
	redisadapter "parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Snapshots in the tracking cache outlive a typical polling interval but not
// a lifecycle step.
const trackingCacheTTL = 5 * time.Minute

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	tariff       *services.Tariff
	consolidator *services.ShipmentConsolidator
	publisher    *kafka.KafkaEventPublisher
	statusCache  *redisadapter.RedisStatusCache
	redisClient  *redis.Client
	logger       *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	graph, err := services.LoadRouteGraph(configs.RouteTablePath)
	if err != nil {
		return CompositionRoot{}, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		tariff:       services.NewTariff(graph),
		consolidator: services.NewShipmentConsolidator(graph),
		publisher: kafka.NewKafkaEventPublisher(
			configs.KafkaHost,
			configs.KafkaParcelStatusTopic,
			configs.KafkaShipmentTopic,
			logger,
		),
		statusCache: redisadapter.NewRedisStatusCache(redisClient, trackingCacheTTL),
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Tariff exposes the pricing service for the quote endpoint.
func (c *CompositionRoot) Tariff() *services.Tariff {
	return c.tariff
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, c.tariff)
}

func (c *CompositionRoot) CreateApplyParcelEventCommandHandler() commands.ApplyParcelEventCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyParcelEventCommandHandler(f, c.publisher, c.statusCache, c.logger)
}

func (c *CompositionRoot) CreateConfirmParcelPaymentCommandHandler() commands.ConfirmParcelPaymentCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmParcelPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignParcelCommandHandler() commands.AssignParcelCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateUnassignParcelCommandHandler() commands.UnassignParcelCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnassignParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateSchedulePickupsCommandHandler() commands.SchedulePickupsCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSchedulePickupsCommandHandler(f)
}

func (c *CompositionRoot) CreateConsolidateShipmentCommandHandler() commands.ConsolidateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConsolidateShipmentCommandHandler(f, c.consolidator)
}

func (c *CompositionRoot) CreateAssignShipmentTransportCommandHandler() commands.AssignShipmentTransportCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignShipmentTransportCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceShipmentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetParcelStatusQueryHandler() queries.GetParcelStatusQueryHandler {
	return queries.NewGetParcelStatusQueryHandler(c.gormDB, c.statusCache, c.logger)
}

func (c *CompositionRoot) CreateGetScheduleSummaryQueryHandler() queries.GetScheduleSummaryQueryHandler {
	return queries.NewGetScheduleSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSchedulePickupsCommandHandler(), c.logger)
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() error {
	if err := c.publisher.Close(); err != nil {
		return err
	}
	return c.redisClient.Close()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"parcelhub/cmd"
	httpserver "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs, logger)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("failed to build composition root", "error", err)
		os.Exit(1)
	}
	defer root.Close()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaParcelStatusTopic: goDotEnvVariable("KAFKA_PARCEL_STATUS_TOPIC"),
		KafkaShipmentTopic:     goDotEnvVariable("KAFKA_SHIPMENT_TOPIC"),
		RedisAddr:              goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:          goDotEnvVariable("REDIS_PASSWORD"),
		RouteTablePath:         goDotEnvVariable("ROUTE_TABLE_PATH"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(gormDB); err != nil {
		logger.Error("failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	return gormDB
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(
		root.Tariff(),
		root.CreateCreateParcelCommandHandler(),
		root.CreateApplyParcelEventCommandHandler(),
		root.CreateConfirmParcelPaymentCommandHandler(),
		root.CreateAssignParcelCommandHandler(),
		root.CreateUnassignParcelCommandHandler(),
		root.CreateConsolidateShipmentCommandHandler(),
		root.CreateAssignShipmentTransportCommandHandler(),
		root.CreateAdvanceShipmentCommandHandler(),
		root.CreateGetParcelStatusQueryHandler(),
		root.CreateGetScheduleSummaryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

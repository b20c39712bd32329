package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"forwarding/cmd"
	httpin "forwarding/internal/adapters/in/http"
	"forwarding/internal/adapters/out/postgres/agencyrepo"
	"forwarding/internal/adapters/out/postgres/catalogrepo"
	"forwarding/internal/adapters/out/postgres/parcelrepo"
	"forwarding/internal/adapters/out/postgres/pricingrepo"
	"forwarding/internal/adapters/out/postgres/raterepo"
	"forwarding/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)
	migrateDatabase(db)

	app := cmd.NewCompositionRoot(configs, db)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close outbound adapters", "error", err)
		}
	}()

	jobManager := jobs.NewJobManager(app.CreateApplyStatusEventsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		AuthProviderURL:        goDotEnvVariable("AUTH_PROVIDER_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&agencyrepo.AgencyDTO{},
		&catalogrepo.ProductDTO{},
		&catalogrepo.ServiceDTO{},
		&pricingrepo.AgreementDTO{},
		&pricingrepo.ShippingRateDTO{},
		&raterepo.DeliveryRateDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusEventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateAgencyCommandHandler(),
		app.CreateRenameAgencyCommandHandler(),
		app.CreateCreatePricingWithRateCommandHandler(),
		app.CreateUpdateShippingRateCommandHandler(),
		app.CreateGetRatesByServiceAndAgencyQueryHandler(),
		app.CreateGetServicesWithRatesQueryHandler(),
		app.CreateResolveDeliveryRateQueryHandler(),
		app.CreateGetOrderStatusSummaryQueryHandler(),
		app.CreateListParcelsQueryHandler(),
		app.CreateAgencyRepository(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

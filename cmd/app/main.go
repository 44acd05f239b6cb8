package main

import (
	"fmt"
	"net/http"
	"os"

	"tableorder/cmd"
	adapterhttp "tableorder/internal/adapters/in/http"
	"tableorder/internal/adapters/out/postgres/deliverystaterepo"
	"tableorder/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateCleanUpSessionsCommandHandler(),
		app.Logger(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		OrderServiceURL: goDotEnvVariable("ORDER_SERVICE_URL"),
		JWTSecret:       goDotEnvVariable("JWT_SECRET"),
		SessionTTL:      goDotEnvVariable("SESSION_TTL"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&deliverystaterepo.DeliveryStateDTO{},
		&deliverystaterepo.VersionDTO{},
		&deliverystaterepo.VersionItemDTO{},
		&deliverystaterepo.RecordDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(adapterhttp.NewRouteGuardMiddleware(
		app.CreateRouteGuard(),
		app.TokenDecoder(),
		app.Logger(),
	))

	server := adapterhttp.NewServer(
		app.SessionStore(),
		app.TokenDecoder(),
		app.Logger(),
		app.CreateSubmitOrderCommandHandler(),
		app.CreateRecordDeliveryCommandHandler(),
		app.CreateAppendOrderVersionCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetDeliveryStateQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

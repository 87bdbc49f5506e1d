package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/injector"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
)

func main() {
	config := infrastructures.LoadConfig()

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(config.ANP_FETCH_SCHEDULE, func() {
		if _, err := app.AnpService.FetchLatestPrices(); err != nil {
			logrus.Errorf("Scheduled ANP price fetch failed: %v", err)
		}
	})
	if err != nil {
		logrus.Fatalf("Invalid ANP fetch schedule %q: %v", config.ANP_FETCH_SCHEDULE, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Fiber configuration
	fiberConfig := fiber.Config{
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	}

	router := fiber.New(fiberConfig)

	// Add CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        300,
	}))

	app.RegisterRoutes(router)

	logrus.Fatal(router.Listen(":" + config.PORT))
}

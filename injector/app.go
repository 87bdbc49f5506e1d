package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/deliveries"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

// Application represents the main application container for fleetfuel-core
type Application struct {
	HealthHandler          *deliveries.HealthHandler
	VehicleHandler         *deliveries.VehicleHandler
	DriverHandler          *deliveries.DriverHandler
	CostCenterHandler      *deliveries.CostCenterHandler
	FuelStationHandler     *deliveries.FuelStationHandler
	FuelTransactionHandler *deliveries.FuelTransactionHandler
	FuelPriceHandler       *deliveries.FuelPriceHandler
	AlertHandler           *deliveries.AlertHandler
	SummaryHandler         *deliveries.SummaryHandler
	AnpService             *services.AnpService
	RateLimitMiddleware    *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	app.HealthHandler.RegisterRoutes(router)
	app.VehicleHandler.RegisterRoutes(router)
	app.DriverHandler.RegisterRoutes(router)
	app.CostCenterHandler.RegisterRoutes(router)
	app.FuelStationHandler.RegisterRoutes(router)
	app.FuelTransactionHandler.RegisterRoutes(router)
	app.FuelPriceHandler.RegisterRoutes(router)
	app.AlertHandler.RegisterRoutes(router)
	app.SummaryHandler.RegisterRoutes(router)
}

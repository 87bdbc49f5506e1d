//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/topnet/fleetfuel-core/internal/app/deliveries"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/services"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("fleetfuel"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewEventService,
	services.NewAuditService,
	services.NewPriceService,
	services.NewAlertService,
	services.NewTransactionService,
	services.NewSummaryService,
	services.NewImportService,
	services.NewAnpService,
	services.NewVehicleService,
	services.NewDriverService,
	services.NewCostCenterService,
	services.NewFuelStationService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewVehicleHandler,
	deliveries.NewDriverHandler,
	deliveries.NewCostCenterHandler,
	deliveries.NewFuelStationHandler,
	deliveries.NewFuelTransactionHandler,
	deliveries.NewFuelPriceHandler,
	deliveries.NewAlertHandler,
	deliveries.NewSummaryHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}

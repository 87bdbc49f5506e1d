package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type FuelPriceHandler struct {
	priceService        *services.PriceService
	anpService          *services.AnpService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewFuelPriceHandler(
	priceService *services.PriceService,
	anpService *services.AnpService,
	rateLimitMiddleware *middlewares.RateLimitMiddleware,
) *FuelPriceHandler {
	return &FuelPriceHandler{
		priceService:        priceService,
		anpService:          anpService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *FuelPriceHandler) RegisterRoutes(router fiber.Router) {
	priceGroup := router.Group("/fuel-prices")

	priceGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetSnapshots)
	priceGroup.Get("/latest", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetLatestPrice)
	priceGroup.Put("/national", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.UpsertNationalPrice)
	priceGroup.Post("/fetch-anp", h.rateLimitMiddleware.LimitByIP(middlewares.HeavyAPILimit), h.FetchAnpPrices)
}

func (h *FuelPriceHandler) GetSnapshots(c *fiber.Ctx) error {
	filter := &models.FuelPriceFilter{
		StationID: queryUUID(c, "station_id"),
	}
	if raw := c.Query("fuel_type"); raw != "" {
		fuelType := models.FuelType(raw)
		filter.FuelType = &fuelType
	}
	if raw := c.Query("source"); raw != "" {
		source := models.FuelPriceSource(raw)
		filter.Source = &source
	}

	snapshots, err := h.priceService.GetSnapshots(filter)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, snapshots)
}

func (h *FuelPriceHandler) GetLatestPrice(c *fiber.Ctx) error {
	rawFuelType := c.Query("fuel_type")
	if rawFuelType == "" {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("fuel_type query parameter is required"))
	}

	price, err := h.priceService.GetLatestPrice(models.FuelType(rawFuelType), queryUUID(c, "station_id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, price)
}

func (h *FuelPriceHandler) UpsertNationalPrice(c *fiber.Ctx) error {
	var req models.NationalPriceUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	snapshot, err := h.priceService.UpsertNationalPrice(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, snapshot)
}

func (h *FuelPriceHandler) FetchAnpPrices(c *fiber.Ctx) error {
	prices, err := h.anpService.FetchLatestPrices()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, prices)
}

package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type FuelStationHandler struct {
	stationService      *services.FuelStationService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewFuelStationHandler(stationService *services.FuelStationService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *FuelStationHandler {
	return &FuelStationHandler{
		stationService:      stationService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *FuelStationHandler) RegisterRoutes(router fiber.Router) {
	stationGroup := router.Group("/stations")

	stationGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetFuelStations)
	stationGroup.Get("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetFuelStation)
	stationGroup.Post("/", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.CreateFuelStation)
	stationGroup.Patch("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.UpdateFuelStation)
	stationGroup.Delete("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.DeleteFuelStation)
}

func (h *FuelStationHandler) CreateFuelStation(c *fiber.Ctx) error {
	var req models.FuelStationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	station, err := h.stationService.CreateFuelStation(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, station)
}

func (h *FuelStationHandler) GetFuelStation(c *fiber.Ctx) error {
	station, err := h.stationService.GetFuelStation(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, station)
}

func (h *FuelStationHandler) GetFuelStations(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)

	stations, err := h.stationService.GetFuelStations(activeOnly)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, stations)
}

func (h *FuelStationHandler) UpdateFuelStation(c *fiber.Ctx) error {
	var req models.FuelStationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	station, err := h.stationService.UpdateFuelStation(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, station)
}

func (h *FuelStationHandler) DeleteFuelStation(c *fiber.Ctx) error {
	if err := h.stationService.DeleteFuelStation(c.Params("id")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

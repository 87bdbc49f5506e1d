package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type VehicleHandler struct {
	vehicleService      *services.VehicleService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewVehicleHandler(vehicleService *services.VehicleService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *VehicleHandler {
	return &VehicleHandler{
		vehicleService:      vehicleService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *VehicleHandler) RegisterRoutes(router fiber.Router) {
	vehicleGroup := router.Group("/vehicles")

	vehicleGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetVehicles)
	vehicleGroup.Get("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetVehicle)
	vehicleGroup.Post("/", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.CreateVehicle)
	vehicleGroup.Patch("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.UpdateVehicle)
	vehicleGroup.Delete("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.DeleteVehicle)
}

func (h *VehicleHandler) CreateVehicle(c *fiber.Ctx) error {
	var req models.VehicleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	vehicle, err := h.vehicleService.CreateVehicle(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, vehicle)
}

func (h *VehicleHandler) GetVehicle(c *fiber.Ctx) error {
	vehicle, err := h.vehicleService.GetVehicle(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, vehicle)
}

func (h *VehicleHandler) GetVehicles(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)

	vehicles, err := h.vehicleService.GetVehicles(activeOnly, parsePagination(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, vehicles)
}

func (h *VehicleHandler) UpdateVehicle(c *fiber.Ctx) error {
	var req models.VehicleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c *fiber.Ctx) error {
	if err := h.vehicleService.DeleteVehicle(c.Params("id")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

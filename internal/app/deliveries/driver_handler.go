package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type DriverHandler struct {
	driverService       *services.DriverService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewDriverHandler(driverService *services.DriverService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *DriverHandler {
	return &DriverHandler{
		driverService:       driverService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *DriverHandler) RegisterRoutes(router fiber.Router) {
	driverGroup := router.Group("/drivers")

	driverGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetDrivers)
	driverGroup.Get("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetDriver)
	driverGroup.Post("/", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.CreateDriver)
	driverGroup.Patch("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.UpdateDriver)
	driverGroup.Delete("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.DeleteDriver)
}

func (h *DriverHandler) CreateDriver(c *fiber.Ctx) error {
	var req models.DriverCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	driver, err := h.driverService.CreateDriver(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, driver)
}

func (h *DriverHandler) GetDriver(c *fiber.Ctx) error {
	driver, err := h.driverService.GetDriver(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, driver)
}

func (h *DriverHandler) GetDrivers(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)

	drivers, err := h.driverService.GetDrivers(activeOnly, parsePagination(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, drivers)
}

func (h *DriverHandler) UpdateDriver(c *fiber.Ctx) error {
	var req models.DriverUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	driver, err := h.driverService.UpdateDriver(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, driver)
}

func (h *DriverHandler) DeleteDriver(c *fiber.Ctx) error {
	if err := h.driverService.DeleteDriver(c.Params("id")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

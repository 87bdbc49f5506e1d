package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type CostCenterHandler struct {
	costCenterService   *services.CostCenterService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewCostCenterHandler(costCenterService *services.CostCenterService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *CostCenterHandler {
	return &CostCenterHandler{
		costCenterService:   costCenterService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *CostCenterHandler) RegisterRoutes(router fiber.Router) {
	costCenterGroup := router.Group("/cost-centers")

	costCenterGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetCostCenters)
	costCenterGroup.Get("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetCostCenter)
	costCenterGroup.Post("/", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.CreateCostCenter)
	costCenterGroup.Patch("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.UpdateCostCenter)
	costCenterGroup.Delete("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.DeleteCostCenter)
}

func (h *CostCenterHandler) CreateCostCenter(c *fiber.Ctx) error {
	var req models.CostCenterCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	costCenter, err := h.costCenterService.CreateCostCenter(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, costCenter)
}

func (h *CostCenterHandler) GetCostCenter(c *fiber.Ctx) error {
	costCenter, err := h.costCenterService.GetCostCenter(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, costCenter)
}

func (h *CostCenterHandler) GetCostCenters(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)

	costCenters, err := h.costCenterService.GetCostCenters(activeOnly)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, costCenters)
}

func (h *CostCenterHandler) UpdateCostCenter(c *fiber.Ctx) error {
	var req models.CostCenterUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	costCenter, err := h.costCenterService.UpdateCostCenter(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, costCenter)
}

func (h *CostCenterHandler) DeleteCostCenter(c *fiber.Ctx) error {
	if err := h.costCenterService.DeleteCostCenter(c.Params("id")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

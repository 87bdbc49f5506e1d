package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type AlertHandler struct {
	alertService        *services.AlertService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewAlertHandler(alertService *services.AlertService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *AlertHandler {
	return &AlertHandler{
		alertService:        alertService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *AlertHandler) RegisterRoutes(router fiber.Router) {
	alertGroup := router.Group("/alerts")

	alertGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetAlerts)
	alertGroup.Get("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetAlert)
	alertGroup.Post("/:id/resolve", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.ResolveAlert)
}

func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	filter := &models.AlertFilter{
		FromDate:  queryTime(c, "from"),
		ToDate:    queryTime(c, "to"),
		VehicleID: queryUUID(c, "vehicle_id"),
		Resolved:  queryBool(c, "resolved"),
	}
	if raw := c.Query("type"); raw != "" {
		alertType := models.AlertType(raw)
		filter.Type = &alertType
	}
	if raw := c.Query("severity"); raw != "" {
		severity := models.AlertSeverity(raw)
		filter.Severity = &severity
	}

	alerts, err := h.alertService.GetAlerts(filter, parsePagination(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, alerts)
}

func (h *AlertHandler) GetAlert(c *fiber.Ctx) error {
	alert, err := h.alertService.GetAlert(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, alert)
}

func (h *AlertHandler) ResolveAlert(c *fiber.Ctx) error {
	alert, err := h.alertService.ResolveAlert(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, alert)
}

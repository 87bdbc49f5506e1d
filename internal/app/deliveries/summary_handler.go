package deliveries

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type SummaryHandler struct {
	summaryService      *services.SummaryService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewSummaryHandler(summaryService *services.SummaryService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *SummaryHandler {
	return &SummaryHandler{
		summaryService:      summaryService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *SummaryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard/summary", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetDashboardSummary)
}

// GetDashboardSummary defaults the period to month-to-date when the
// from/to query parameters are absent.
func (h *SummaryHandler) GetDashboardSummary(c *fiber.Ctx) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	if parsed := queryTime(c, "from"); parsed != nil {
		from = *parsed
	}
	if parsed := queryTime(c, "to"); parsed != nil {
		to = *parsed
	}
	if to.Before(from) {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("to must not be before from"))
	}

	filter := &models.SummaryFilter{
		From:            from,
		To:              to,
		IncludePersonal: c.QueryBool("include_personal", false),
		VehicleID:       queryUUID(c, "vehicle"),
		CostCenterID:    queryUUID(c, "cost_center"),
	}

	summary, err := h.summaryService.GetDashboardSummary(filter)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, summary)
}

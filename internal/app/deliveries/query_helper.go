package deliveries

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
)

func parsePagination(c *fiber.Ctx) *models.PaginationRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return &models.PaginationRequest{Page: page, Limit: limit}
}

func queryUUID(c *fiber.Ctx, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func queryTime(c *fiber.Ctx, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return pkg.ParseFlexibleTime(raw)
}

func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

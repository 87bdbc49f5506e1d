package deliveries

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/middlewares"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/app/services"
)

type FuelTransactionHandler struct {
	transactionService  *services.TransactionService
	importService       *services.ImportService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewFuelTransactionHandler(
	transactionService *services.TransactionService,
	importService *services.ImportService,
	rateLimitMiddleware *middlewares.RateLimitMiddleware,
) *FuelTransactionHandler {
	return &FuelTransactionHandler{
		transactionService:  transactionService,
		importService:       importService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *FuelTransactionHandler) RegisterRoutes(router fiber.Router) {
	txGroup := router.Group("/fuel-transactions")

	txGroup.Get("/", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetTransactions)
	txGroup.Get("/import/template", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetImportTemplate)
	txGroup.Get("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.ReadAPILimit), h.GetTransaction)
	txGroup.Post("/", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.CreateTransaction)
	txGroup.Post("/import", h.rateLimitMiddleware.LimitByIP(middlewares.HeavyAPILimit), h.ImportTransactions)
	txGroup.Patch("/:id", h.rateLimitMiddleware.LimitByIP(middlewares.WriteAPILimit), h.UpdateTransaction)
}

func (h *FuelTransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req models.FuelTransactionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	tx, err := h.transactionService.CreateTransaction(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, tx)
}

func (h *FuelTransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.transactionService.GetTransaction(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, tx)
}

func (h *FuelTransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter := &models.FuelTransactionFilter{
		FromDate:     queryTime(c, "from"),
		ToDate:       queryTime(c, "to"),
		VehicleID:    queryUUID(c, "vehicle_id"),
		DriverID:     queryUUID(c, "driver_id"),
		StationID:    queryUUID(c, "station_id"),
		CostCenterID: queryUUID(c, "cost_center_id"),
	}
	if raw := c.Query("fuel_type"); raw != "" {
		fuelType := models.FuelType(raw)
		filter.FuelType = &fuelType
	}

	txs, err := h.transactionService.GetTransactions(filter, parsePagination(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, txs)
}

func (h *FuelTransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	var req models.FuelTransactionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	tx, err := h.transactionService.UpdateTransaction(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, tx)
}

// ImportTransactions accepts a CSV file either as a multipart "file"
// field or as the raw request body.
func (h *FuelTransactionHandler) ImportTransactions(c *fiber.Ctx) error {
	reader, err := importReader(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.importService.ImportTransactions(reader)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *FuelTransactionHandler) GetImportTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fuel_transactions_template.csv"`)
	return c.SendString(h.importService.ImportTemplate())
}

func importReader(c *fiber.Ctx) (io.Reader, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, errors.NewBadRequestError("Failed to open uploaded file")
		}
		return file, nil
	}

	body := c.Body()
	if len(body) == 0 {
		return nil, errors.NewBadRequestError("CSV file is required")
	}
	return bytes.NewReader(body), nil
}

package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"gorm.io/gorm"
)

type TransactionService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	priceService *PriceService
	alertService *AlertService
	auditService *AuditService
	eventService *EventService
}

func NewTransactionService(
	db *gorm.DB,
	validator *infrastructures.Validator,
	priceService *PriceService,
	alertService *AlertService,
	auditService *AuditService,
	eventService *EventService,
) *TransactionService {
	return &TransactionService{
		db:           db,
		validator:    validator,
		priceService: priceService,
		alertService: alertService,
		auditService: auditService,
		eventService: eventService,
	}
}

// CreateTransaction validates and persists a fuel transaction, then
// synchronously runs the price reconciler and alert evaluator before
// returning. The transaction row is the durability boundary: failures
// in the post-write steps are logged and never roll it back.
func (s *TransactionService) CreateTransaction(req *models.FuelTransactionCreateRequest) (*models.FuelTransaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := validateAmounts(req.Liters, req.UnitPrice, req.OdometerKm); err != nil {
		return nil, err
	}

	vehicle, err := s.requireVehicle(req.VehicleID)
	if err != nil {
		return nil, err
	}

	driverID, err := s.parseOptionalUUID(req.DriverID, "driver ID")
	if err != nil {
		return nil, err
	}
	stationID, err := s.parseOptionalUUID(req.StationID, "station ID")
	if err != nil {
		return nil, err
	}
	costCenterID, err := s.parseOptionalUUID(req.CostCenterID, "cost center ID")
	if err != nil {
		return nil, err
	}

	fuelType := req.FuelType
	if fuelType == "" {
		fuelType = vehicle.FuelType
	}

	tx := &models.FuelTransaction{
		VehicleID:    vehicle.ID,
		DriverID:     driverID,
		StationID:    stationID,
		CostCenterID: costCenterID,
		PurchasedAt:  req.PurchasedAt,
		Liters:       req.Liters,
		UnitPrice:    req.UnitPrice,
		TotalCost:    models.ResolveTotalCost(req.Liters, req.UnitPrice, req.TotalCost),
		OdometerKm:   req.OdometerKm,
		FuelType:     fuelType,
		Notes:        req.Notes,
	}

	if err := s.db.Create(tx).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create fuel transaction")
	}

	s.auditService.LogChange("fuel_transactions", tx.ID, models.AuditActionCreate, nil, tx, nil)
	s.runPostWritePipeline(vehicle, tx, true)

	s.eventService.Publish(models.EventFuelTransactionCreated, map[string]any{
		"transaction_id": tx.ID.String(),
		"vehicle_id":     tx.VehicleID.String(),
		"purchased_at":   tx.PurchasedAt,
		"total_cost":     tx.TotalCost.String(),
	})

	return s.GetTransaction(tx.ID.String())
}

// runPostWritePipeline executes the synchronous post-write steps.
// Each step tolerates the other's failure; neither blocks the
// user-visible success response.
func (s *TransactionService) runPostWritePipeline(vehicle *models.Vehicle, tx *models.FuelTransaction, evaluateAlerts bool) {
	if err := s.priceService.ReconcileFromTransaction(tx); err != nil {
		logrus.Errorf("Price reconciliation failed for transaction %s: %v", tx.ID, err)
	}
	if evaluateAlerts {
		if err := s.alertService.EvaluateTransaction(vehicle, tx); err != nil {
			logrus.Errorf("Alert evaluation failed for transaction %s: %v", tx.ID, err)
		}
	}
}

// UpdateTransaction applies an admin correction. total_cost is
// recomputed when liters or unit_price change; alert rules are only
// evaluated on create.
func (s *TransactionService) UpdateTransaction(id string, req *models.FuelTransactionUpdateRequest) (*models.FuelTransaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tx, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}
	oldSnapshot := *tx

	if req.DriverID != nil {
		driverID, err := s.parseOptionalUUID(req.DriverID, "driver ID")
		if err != nil {
			return nil, err
		}
		tx.DriverID = driverID
	}
	if req.StationID != nil {
		stationID, err := s.parseOptionalUUID(req.StationID, "station ID")
		if err != nil {
			return nil, err
		}
		tx.StationID = stationID
	}
	if req.CostCenterID != nil {
		costCenterID, err := s.parseOptionalUUID(req.CostCenterID, "cost center ID")
		if err != nil {
			return nil, err
		}
		tx.CostCenterID = costCenterID
	}
	if req.PurchasedAt != nil {
		tx.PurchasedAt = *req.PurchasedAt
	}
	if req.Liters != nil {
		if !req.Liters.IsPositive() {
			return nil, errors.NewValidationError(map[string]string{"liters": "Must be greater than zero"})
		}
		tx.Liters = *req.Liters
	}
	if req.UnitPrice != nil {
		if !req.UnitPrice.IsPositive() {
			return nil, errors.NewValidationError(map[string]string{"unit_price": "Must be greater than zero"})
		}
		tx.UnitPrice = *req.UnitPrice
	}
	if req.OdometerKm != nil {
		tx.OdometerKm = *req.OdometerKm
	}
	if req.FuelType != nil {
		tx.FuelType = *req.FuelType
	}
	if req.Notes != nil {
		tx.Notes = *req.Notes
	}

	if req.Liters != nil || req.UnitPrice != nil {
		tx.TotalCost = models.ComputeTotalCost(tx.Liters, tx.UnitPrice)
	}

	if err := s.db.Save(tx).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update fuel transaction")
	}

	s.auditService.LogChange("fuel_transactions", tx.ID, models.AuditActionUpdate, &oldSnapshot, tx, nil)
	s.runPostWritePipeline(&tx.Vehicle, tx, false)

	s.eventService.Publish(models.EventFuelTransactionUpdated, map[string]any{
		"transaction_id": tx.ID.String(),
		"vehicle_id":     tx.VehicleID.String(),
		"purchased_at":   tx.PurchasedAt,
		"total_cost":     tx.TotalCost.String(),
	})

	return s.GetTransaction(tx.ID.String())
}

func (s *TransactionService) GetTransaction(id string) (*models.FuelTransaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid transaction ID format")
	}

	var tx models.FuelTransaction
	err = s.db.
		Preload("Vehicle").
		Preload("Driver").
		Preload("Station").
		Preload("CostCenter").
		First(&tx, "id = ?", txID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Fuel transaction not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get fuel transaction")
	}

	s.attachKmPerLiter(&tx)
	return &tx, nil
}

func (s *TransactionService) GetTransactions(filter *models.FuelTransactionFilter, pagination *models.PaginationRequest) (*models.Pagination[[]models.FuelTransaction], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	query := s.db.Model(&models.FuelTransaction{})
	query = applyTransactionFilter(query, filter)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count fuel transactions")
	}

	var transactions []models.FuelTransaction
	offset := (pagination.Page - 1) * pagination.Limit
	err := query.
		Preload("Vehicle").
		Preload("Driver").
		Preload("Station").
		Preload("CostCenter").
		Order("purchased_at desc").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get fuel transactions")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	return &models.Pagination[[]models.FuelTransaction]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      transactions,
	}, nil
}

// FindDuplicate looks up an existing transaction matching the CSV
// dedup key (vehicle, purchased_at, liters). Returns nil when none
// exists.
func (s *TransactionService) FindDuplicate(vehicleID uuid.UUID, purchasedAt time.Time, liters decimal.Decimal) (*models.FuelTransaction, error) {
	var existing models.FuelTransaction
	err := s.db.
		Where("vehicle_id = ?", vehicleID).
		Where("purchased_at = ?", purchasedAt).
		Where("liters = ?", liters).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to check for duplicate transaction")
	}
	return &existing, nil
}

func (s *TransactionService) attachKmPerLiter(tx *models.FuelTransaction) {
	var previous models.FuelTransaction
	err := s.db.
		Where("vehicle_id = ?", tx.VehicleID).
		Where("purchased_at < ?", tx.PurchasedAt).
		Where("id <> ?", tx.ID).
		Order("purchased_at desc").
		First(&previous).Error
	if err != nil {
		return
	}
	tx.KmPerLiter = tx.ConsumptionKmPerLiter(previous.OdometerKm)
}

func (s *TransactionService) requireVehicle(id string) (*models.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid vehicle ID format")
	}

	var vehicle models.Vehicle
	err = s.db.First(&vehicle, "id = ?", vehicleID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Vehicle not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get vehicle")
	}
	if !vehicle.Active {
		return nil, errors.NewBadRequestError("Vehicle is inactive")
	}
	return &vehicle, nil
}

func (s *TransactionService) parseOptionalUUID(id *string, fieldName string) (*uuid.UUID, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	parsedUUID, err := uuid.Parse(*id)
	if err != nil {
		return nil, errors.NewBadRequestError(fmt.Sprintf("Invalid %s format", fieldName))
	}
	return &parsedUUID, nil
}

func validateAmounts(liters, unitPrice decimal.Decimal, odometerKm int64) error {
	fields := map[string]string{}
	if !liters.IsPositive() {
		fields["liters"] = "Must be greater than zero"
	}
	if !unitPrice.IsPositive() {
		fields["unit_price"] = "Must be greater than zero"
	}
	if odometerKm < 0 {
		fields["odometer_km"] = "Must not be negative"
	}
	if len(fields) > 0 {
		return errors.NewValidationError(fields)
	}
	return nil
}

func applyTransactionFilter(query *gorm.DB, filter *models.FuelTransactionFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.FromDate != nil {
		query = query.Where("purchased_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("purchased_at <= ?", *filter.ToDate)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.StationID != nil {
		query = query.Where("station_id = ?", *filter.StationID)
	}
	if filter.CostCenterID != nil {
		query = query.Where("cost_center_id = ?", *filter.CostCenterID)
	}
	if filter.FuelType != nil {
		query = query.Where("fuel_type = ?", *filter.FuelType)
	}
	return query
}

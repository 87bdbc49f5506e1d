package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"gorm.io/gorm"
)

// odometerRegressionCriticalKm is the regression size above which an
// ODOMETER_REGRESSION alert escalates from WARN to CRITICAL.
const odometerRegressionCriticalKm = 1000

type AlertService struct {
	db           *gorm.DB
	eventService *EventService
}

func NewAlertService(db *gorm.DB, eventService *EventService) *AlertService {
	return &AlertService{
		db:           db,
		eventService: eventService,
	}
}

// EvaluateTransaction runs the consistency rules for a just-written
// transaction and persists the resulting alerts. Alerts are
// append-only; repeated violations on sequential transactions are not
// deduplicated against prior unresolved alerts.
func (s *AlertService) EvaluateTransaction(vehicle *models.Vehicle, tx *models.FuelTransaction) error {
	previous, err := s.previousTransaction(tx)
	if err != nil {
		return err
	}

	var costCenter *models.CostCenter
	if tx.CostCenterID != nil {
		costCenter = &models.CostCenter{}
		if err := s.db.First(costCenter, "id = ?", *tx.CostCenterID).Error; err != nil {
			costCenter = nil
		}
	}

	alerts := evaluateRules(vehicle, tx, previous, costCenter)
	if len(alerts) == 0 {
		return nil
	}

	if err := s.db.Create(&alerts).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create alerts")
	}

	for _, alert := range alerts {
		s.eventService.Publish(models.EventAlertCreated, map[string]any{
			"alert_id":   alert.ID.String(),
			"vehicle_id": alert.VehicleID.String(),
			"type":       alert.Type,
			"severity":   alert.Severity,
		})
	}

	logrus.Infof("Created %d alerts for transaction %s", len(alerts), tx.ID)
	return nil
}

// evaluateRules applies the four independent consistency rules. Each
// rule emits at most one alert; the rules are order-insensitive.
func evaluateRules(vehicle *models.Vehicle, tx *models.FuelTransaction, previous *models.FuelTransaction, costCenter *models.CostCenter) []models.Alert {
	var alerts []models.Alert

	if alert := checkOdometerRegression(vehicle, tx, previous); alert != nil {
		alerts = append(alerts, *alert)
	}
	if alert := checkLitersOverTank(vehicle, tx); alert != nil {
		alerts = append(alerts, *alert)
	}
	if alert := checkOutlierConsumption(vehicle, tx, previous); alert != nil {
		alerts = append(alerts, *alert)
	}
	if alert := checkPersonalUsage(vehicle, tx, costCenter); alert != nil {
		alerts = append(alerts, *alert)
	}

	return alerts
}

func checkOdometerRegression(vehicle *models.Vehicle, tx *models.FuelTransaction, previous *models.FuelTransaction) *models.Alert {
	if previous == nil || tx.OdometerKm >= previous.OdometerKm {
		return nil
	}

	regression := previous.OdometerKm - tx.OdometerKm
	severity := models.AlertSeverityWarn
	if regression > odometerRegressionCriticalKm {
		severity = models.AlertSeverityCritical
	}

	return newAlert(vehicle, tx, models.AlertTypeOdometerRegression, severity, fmt.Sprintf(
		"Odometer regressed from %d km to %d km. Difference: %d km",
		previous.OdometerKm, tx.OdometerKm, regression,
	))
}

func checkLitersOverTank(vehicle *models.Vehicle, tx *models.FuelTransaction) *models.Alert {
	if vehicle.TankCapacityLiters == nil || !tx.Liters.GreaterThan(*vehicle.TankCapacityLiters) {
		return nil
	}

	return newAlert(vehicle, tx, models.AlertTypeLitersOverTank, models.AlertSeverityWarn, fmt.Sprintf(
		"Fueled liters (%sL) exceed tank capacity (%sL)",
		tx.Liters.String(), vehicle.TankCapacityLiters.String(),
	))
}

func checkOutlierConsumption(vehicle *models.Vehicle, tx *models.FuelTransaction, previous *models.FuelTransaction) *models.Alert {
	if previous == nil || vehicle.MinExpectedKmPerLiter == nil || vehicle.MaxExpectedKmPerLiter == nil {
		return nil
	}

	kmPerLiter := tx.ConsumptionKmPerLiter(previous.OdometerKm)
	if kmPerLiter == nil {
		return nil
	}

	if kmPerLiter.LessThan(*vehicle.MinExpectedKmPerLiter) {
		return newAlert(vehicle, tx, models.AlertTypeOutlierConsumption, models.AlertSeverityWarn, fmt.Sprintf(
			"Consumption too low: %s km/L. Expected minimum: %s km/L",
			kmPerLiter.StringFixed(2), vehicle.MinExpectedKmPerLiter.String(),
		))
	}
	if kmPerLiter.GreaterThan(*vehicle.MaxExpectedKmPerLiter) {
		return newAlert(vehicle, tx, models.AlertTypeOutlierConsumption, models.AlertSeverityInfo, fmt.Sprintf(
			"Consumption too high: %s km/L. Expected maximum: %s km/L. Check for odometer entry errors",
			kmPerLiter.StringFixed(2), vehicle.MaxExpectedKmPerLiter.String(),
		))
	}
	return nil
}

func checkPersonalUsage(vehicle *models.Vehicle, tx *models.FuelTransaction, costCenter *models.CostCenter) *models.Alert {
	if vehicle.UsageCategory != models.UsageCategoryPersonal {
		return nil
	}
	if costCenter == nil || costCenter.Category == models.CostCenterCategoryAdmin {
		return nil
	}

	return newAlert(vehicle, tx, models.AlertTypePersonalUsage, models.AlertSeverityInfo, fmt.Sprintf(
		"Personal vehicle (%s) fueled under operational cost center: %s",
		vehicle.Name, costCenter.Name,
	))
}

func newAlert(vehicle *models.Vehicle, tx *models.FuelTransaction, alertType models.AlertType, severity models.AlertSeverity, message string) *models.Alert {
	txID := tx.ID
	return &models.Alert{
		VehicleID:         vehicle.ID,
		FuelTransactionID: &txID,
		Type:              alertType,
		Severity:          severity,
		Message:           message,
	}
}

func (s *AlertService) previousTransaction(tx *models.FuelTransaction) (*models.FuelTransaction, error) {
	var previous models.FuelTransaction
	err := s.db.
		Where("vehicle_id = ?", tx.VehicleID).
		Where("purchased_at < ?", tx.PurchasedAt).
		Where("id <> ?", tx.ID).
		Order("purchased_at desc").
		First(&previous).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load previous transaction")
	}
	return &previous, nil
}

func (s *AlertService) GetAlert(id string) (*models.Alert, error) {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid alert ID format")
	}

	var alert models.Alert
	err = s.db.Preload("Vehicle").Preload("FuelTransaction").First(&alert, "id = ?", alertID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Alert not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get alert")
	}
	return &alert, nil
}

func (s *AlertService) GetAlerts(filter *models.AlertFilter, pagination *models.PaginationRequest) (*models.Pagination[[]models.Alert], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	query := s.db.Model(&models.Alert{})
	query = applyAlertFilter(query, filter)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count alerts")
	}

	var alerts []models.Alert
	offset := (pagination.Page - 1) * pagination.Limit
	err := query.
		Preload("Vehicle").
		Order("created_at desc").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&alerts).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get alerts")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	return &models.Pagination[[]models.Alert]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      alerts,
	}, nil
}

// ResolveAlert marks an alert resolved. Resolving an already resolved
// alert is rejected; alerts are never auto-resolved or deleted.
func (s *AlertService) ResolveAlert(id string) (*models.Alert, error) {
	alert, err := s.GetAlert(id)
	if err != nil {
		return nil, err
	}

	if alert.IsResolved() {
		return nil, errors.NewBadRequestError("Alert already resolved")
	}

	now := time.Now()
	alert.ResolvedAt = &now
	if err := s.db.Save(alert).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to resolve alert")
	}

	s.eventService.Publish(models.EventAlertResolved, map[string]any{
		"alert_id":   alert.ID.String(),
		"vehicle_id": alert.VehicleID.String(),
		"type":       alert.Type,
	})

	return alert, nil
}

// OpenAlertsSummary returns the unresolved alert count and the most
// recent unresolved alerts for the dashboard.
func (s *AlertService) OpenAlertsSummary(includePersonal bool, limit int) (*models.AlertsSummary, error) {
	query := s.db.Model(&models.Alert{}).Where("resolved_at IS NULL")
	if !includePersonal {
		query = query.
			Joins("JOIN vehicles ON vehicles.id = alerts.vehicle_id").
			Where("vehicles.usage_category <> ?", models.UsageCategoryPersonal)
	}

	var openCount int64
	if err := query.Count(&openCount).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count open alerts")
	}

	var alerts []models.Alert
	err := query.Preload("Vehicle").Order("alerts.created_at desc").Limit(limit).Find(&alerts).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load top alerts")
	}

	topAlerts := make([]models.AlertSummaryEntry, 0, len(alerts))
	for _, alert := range alerts {
		topAlerts = append(topAlerts, models.AlertSummaryEntry{
			ID:          alert.ID,
			VehicleName: alert.Vehicle.Name,
			Type:        alert.Type,
			Severity:    alert.Severity,
			Message:     alert.Message,
			CreatedAt:   alert.CreatedAt,
		})
	}

	return &models.AlertsSummary{
		OpenCount: openCount,
		TopAlerts: topAlerts,
	}, nil
}

func applyAlertFilter(query *gorm.DB, filter *models.AlertFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.FromDate != nil {
		query = query.Where("alerts.created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("alerts.created_at <= ?", *filter.ToDate)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	if filter.Resolved != nil {
		if *filter.Resolved {
			query = query.Where("resolved_at IS NOT NULL")
		} else {
			query = query.Where("resolved_at IS NULL")
		}
	}
	return query
}

package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"gorm.io/gorm"
)

type PriceService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	eventService *EventService
}

func NewPriceService(db *gorm.DB, validator *infrastructures.Validator, eventService *EventService) *PriceService {
	return &PriceService{
		db:           db,
		validator:    validator,
		eventService: eventService,
	}
}

// ReconcileFromTransaction upserts the snapshot keyed by
// (fuel_type, station-or-global, last_transaction) with the
// transaction's price. collected_at follows the transaction's
// purchased_at, not the wall clock, so a backdated entry still
// overwrites a newer snapshot.
func (s *PriceService) ReconcileFromTransaction(tx *models.FuelTransaction) error {
	snapshot, err := s.findSnapshot(tx.FuelType, tx.StationID, models.FuelPriceSourceLastTransaction)
	if err != nil {
		return err
	}

	if snapshot == nil {
		snapshot = &models.FuelPriceSnapshot{
			FuelType:      tx.FuelType,
			StationID:     tx.StationID,
			PricePerLiter: tx.UnitPrice,
			CollectedAt:   tx.PurchasedAt,
			Source:        models.FuelPriceSourceLastTransaction,
		}
		if err := s.db.Create(snapshot).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create price snapshot")
		}
	} else {
		snapshot.PricePerLiter = tx.UnitPrice
		snapshot.CollectedAt = tx.PurchasedAt
		if err := s.db.Save(snapshot).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update price snapshot")
		}
	}

	s.eventService.Publish(models.EventFuelPriceUpdated, map[string]any{
		"fuel_type":       tx.FuelType,
		"price_per_liter": tx.UnitPrice.String(),
		"source":          models.FuelPriceSourceLastTransaction,
	})

	return nil
}

// GetLatestPrice resolves the current reference price for a fuel
// type. Station-specific pump price wins, then the global
// last-transaction price, then the national average (manual or
// external). Returns a not-found error when nothing is known.
func (s *PriceService) GetLatestPrice(fuelType models.FuelType, stationID *uuid.UUID) (*models.LatestPriceResponse, error) {
	if stationID != nil {
		snapshot, err := s.findSnapshot(fuelType, stationID, models.FuelPriceSourceLastTransaction)
		if err != nil {
			return nil, err
		}
		if snapshot != nil {
			return s.toLatestPriceResponse(snapshot), nil
		}
	}

	snapshot, err := s.findSnapshot(fuelType, nil, models.FuelPriceSourceLastTransaction)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot, err = s.findNationalReference(fuelType)
		if err != nil {
			return nil, err
		}
	}
	if snapshot == nil {
		return nil, errors.NewNotFoundError("No price reference found for this fuel type")
	}

	return s.toLatestPriceResponse(snapshot), nil
}

// UpsertNationalPrice writes the manual national average for a fuel
// type (global key, source=manual).
func (s *PriceService) UpsertNationalPrice(req *models.NationalPriceUpsertRequest) (*models.FuelPriceSnapshot, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.PricePerLiter.IsPositive() {
		return nil, errors.NewValidationError(map[string]string{
			"price_per_liter": "Must be greater than zero",
		})
	}

	collectedAt := time.Now()
	if req.CollectedAt != nil {
		collectedAt = *req.CollectedAt
	}

	snapshot, err := s.upsertGlobal(req.FuelType, req.PricePerLiter, collectedAt, models.FuelPriceSourceManual)
	if err != nil {
		return nil, err
	}

	s.eventService.Publish(models.EventFuelPriceUpdated, map[string]any{
		"fuel_type":       req.FuelType,
		"price_per_liter": req.PricePerLiter.String(),
		"source":          models.FuelPriceSourceManual,
	})

	return snapshot, nil
}

// SaveExternalPrices persists externally fetched national averages.
// Partial failures leave the remaining snapshots untouched.
func (s *PriceService) SaveExternalPrices(prices map[models.FuelType]decimal.Decimal, collectedAt time.Time) error {
	for fuelType, price := range prices {
		if _, err := s.upsertGlobal(fuelType, price, collectedAt, models.FuelPriceSourceExternalAnp); err != nil {
			logrus.Errorf("Failed to save external price for %s: %v", fuelType, err)
			continue
		}
		logrus.Infof("External price saved: %s = %s", fuelType, price.String())
	}
	return nil
}

// NationalReferenceByFuelType returns the latest national average
// (manual or external) per fuel type for the aggregator. Fuel types
// without a reference are absent from the map.
func (s *PriceService) NationalReferenceByFuelType(fuelTypes []models.FuelType) (map[models.FuelType]decimal.Decimal, error) {
	if len(fuelTypes) == 0 {
		return map[models.FuelType]decimal.Decimal{}, nil
	}

	var snapshots []models.FuelPriceSnapshot
	err := s.db.
		Where("fuel_type IN ?", fuelTypes).
		Where("station_id IS NULL").
		Where("source IN ?", []models.FuelPriceSource{models.FuelPriceSourceExternalAnp, models.FuelPriceSourceManual}).
		Order("collected_at desc").
		Find(&snapshots).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load price references")
	}

	references := make(map[models.FuelType]decimal.Decimal)
	for _, snapshot := range snapshots {
		if _, ok := references[snapshot.FuelType]; !ok {
			references[snapshot.FuelType] = snapshot.PricePerLiter
		}
	}
	return references, nil
}

func (s *PriceService) GetSnapshots(filter *models.FuelPriceFilter) ([]models.FuelPriceSnapshot, error) {
	query := s.db.Preload("Station").Order("collected_at desc")

	if filter != nil {
		if filter.FuelType != nil {
			query = query.Where("fuel_type = ?", *filter.FuelType)
		}
		if filter.StationID != nil {
			query = query.Where("station_id = ?", *filter.StationID)
		}
		if filter.Source != nil {
			query = query.Where("source = ?", *filter.Source)
		}
	}

	var snapshots []models.FuelPriceSnapshot
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get price snapshots")
	}
	return snapshots, nil
}

func (s *PriceService) upsertGlobal(fuelType models.FuelType, price decimal.Decimal, collectedAt time.Time, source models.FuelPriceSource) (*models.FuelPriceSnapshot, error) {
	snapshot, err := s.findSnapshot(fuelType, nil, source)
	if err != nil {
		return nil, err
	}

	if snapshot == nil {
		snapshot = &models.FuelPriceSnapshot{
			FuelType:      fuelType,
			PricePerLiter: price,
			CollectedAt:   collectedAt,
			Source:        source,
		}
		if err := s.db.Create(snapshot).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to create price snapshot")
		}
		return snapshot, nil
	}

	snapshot.PricePerLiter = price
	snapshot.CollectedAt = collectedAt
	if err := s.db.Save(snapshot).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update price snapshot")
	}
	return snapshot, nil
}

func (s *PriceService) findSnapshot(fuelType models.FuelType, stationID *uuid.UUID, source models.FuelPriceSource) (*models.FuelPriceSnapshot, error) {
	query := s.db.Where("fuel_type = ? AND source = ?", fuelType, source)
	if stationID != nil {
		query = query.Where("station_id = ?", *stationID)
	} else {
		query = query.Where("station_id IS NULL")
	}

	var snapshot models.FuelPriceSnapshot
	err := query.First(&snapshot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to query price snapshot")
	}
	return &snapshot, nil
}

func (s *PriceService) findNationalReference(fuelType models.FuelType) (*models.FuelPriceSnapshot, error) {
	var snapshot models.FuelPriceSnapshot
	err := s.db.
		Where("fuel_type = ?", fuelType).
		Where("station_id IS NULL").
		Where("source IN ?", []models.FuelPriceSource{models.FuelPriceSourceExternalAnp, models.FuelPriceSourceManual}).
		Order("collected_at desc").
		First(&snapshot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to query price reference")
	}
	return &snapshot, nil
}

func (s *PriceService) toLatestPriceResponse(snapshot *models.FuelPriceSnapshot) *models.LatestPriceResponse {
	response := &models.LatestPriceResponse{
		FuelType:      snapshot.FuelType,
		PricePerLiter: snapshot.PricePerLiter,
		CollectedAt:   snapshot.CollectedAt,
		Source:        snapshot.Source,
		StationID:     snapshot.StationID,
	}
	if snapshot.StationID != nil {
		var station models.FuelStation
		if err := s.db.First(&station, "id = ?", *snapshot.StationID).Error; err == nil {
			response.StationName = &station.Name
		}
	}
	return response
}

package services

import (
	"github.com/google/uuid"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"gorm.io/gorm"
)

type FuelStationService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
}

func NewFuelStationService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *FuelStationService {
	return &FuelStationService{
		db:           db,
		validator:    validator,
		auditService: auditService,
	}
}

func (s *FuelStationService) CreateFuelStation(req *models.FuelStationCreateRequest) (*models.FuelStation, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	station := &models.FuelStation{
		Name:    req.Name,
		City:    req.City,
		Address: req.Address,
		Active:  true,
	}

	if err := s.db.Create(station).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create fuel station")
	}

	s.auditService.LogChange("fuel_stations", station.ID, models.AuditActionCreate, nil, station, nil)
	return station, nil
}

func (s *FuelStationService) GetFuelStation(id string) (*models.FuelStation, error) {
	stationID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid fuel station ID format")
	}

	var station models.FuelStation
	err = s.db.First(&station, "id = ?", stationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Fuel station not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get fuel station")
	}
	return &station, nil
}

func (s *FuelStationService) GetFuelStations(activeOnly bool) ([]models.FuelStation, error) {
	query := s.db.Model(&models.FuelStation{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var stations []models.FuelStation
	if err := query.Order("name asc").Find(&stations).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get fuel stations")
	}
	return stations, nil
}

func (s *FuelStationService) UpdateFuelStation(id string, req *models.FuelStationUpdateRequest) (*models.FuelStation, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	station, err := s.GetFuelStation(id)
	if err != nil {
		return nil, err
	}
	oldSnapshot := *station

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.City != nil {
		station.City = *req.City
	}
	if req.Address != nil {
		station.Address = *req.Address
	}
	if req.Active != nil {
		station.Active = *req.Active
	}

	if err := s.db.Save(station).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update fuel station")
	}

	s.auditService.LogChange("fuel_stations", station.ID, models.AuditActionUpdate, &oldSnapshot, station, nil)
	return station, nil
}

func (s *FuelStationService) DeleteFuelStation(id string) error {
	station, err := s.GetFuelStation(id)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.FuelTransaction{}).Where("station_id = ?", station.ID).Count(&txCount).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to count station transactions")
	}
	if txCount > 0 {
		return errors.NewConflictError("Fuel station has fuel transactions; deactivate it instead")
	}

	if err := s.db.Delete(station).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete fuel station")
	}

	s.auditService.LogChange("fuel_stations", station.ID, models.AuditActionDelete, station, nil, nil)
	return nil
}

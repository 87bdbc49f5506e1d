package services

import (
	"github.com/google/uuid"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"gorm.io/gorm"
)

type DriverService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
}

func NewDriverService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *DriverService {
	return &DriverService{
		db:           db,
		validator:    validator,
		auditService: auditService,
	}
}

func (s *DriverService) CreateDriver(req *models.DriverCreateRequest) (*models.Driver, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	vehicleID, err := s.resolveVehicleID(req.CurrentVehicleID)
	if err != nil {
		return nil, err
	}

	driver := &models.Driver{
		Name:             req.Name,
		DocID:            req.DocID,
		Phone:            req.Phone,
		CurrentVehicleID: vehicleID,
		Active:           true,
	}

	if err := s.db.Create(driver).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create driver")
	}

	s.auditService.LogChange("drivers", driver.ID, models.AuditActionCreate, nil, driver, nil)
	return driver, nil
}

func (s *DriverService) GetDriver(id string) (*models.Driver, error) {
	driverID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid driver ID format")
	}

	var driver models.Driver
	err = s.db.Preload("CurrentVehicle").First(&driver, "id = ?", driverID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Driver not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get driver")
	}
	return &driver, nil
}

func (s *DriverService) GetDrivers(activeOnly bool, pagination *models.PaginationRequest) (*models.Pagination[[]models.Driver], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	query := s.db.Model(&models.Driver{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count drivers")
	}

	var drivers []models.Driver
	offset := (pagination.Page - 1) * pagination.Limit
	if err := query.Preload("CurrentVehicle").Order("name asc").Limit(pagination.Limit).Offset(offset).Find(&drivers).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get drivers")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	return &models.Pagination[[]models.Driver]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      drivers,
	}, nil
}

func (s *DriverService) UpdateDriver(id string, req *models.DriverUpdateRequest) (*models.Driver, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	driver, err := s.GetDriver(id)
	if err != nil {
		return nil, err
	}
	oldSnapshot := *driver

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.DocID != nil {
		driver.DocID = *req.DocID
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.CurrentVehicleID != nil {
		vehicleID, err := s.resolveVehicleID(req.CurrentVehicleID)
		if err != nil {
			return nil, err
		}
		driver.CurrentVehicleID = vehicleID
	}
	if req.Active != nil {
		driver.Active = *req.Active
	}

	if err := s.db.Save(driver).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update driver")
	}

	s.auditService.LogChange("drivers", driver.ID, models.AuditActionUpdate, &oldSnapshot, driver, nil)
	return driver, nil
}

func (s *DriverService) DeleteDriver(id string) error {
	driver, err := s.GetDriver(id)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.FuelTransaction{}).Where("driver_id = ?", driver.ID).Count(&txCount).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to count driver transactions")
	}
	if txCount > 0 {
		return errors.NewConflictError("Driver has fuel transactions; deactivate them instead")
	}

	if err := s.db.Delete(driver).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete driver")
	}

	s.auditService.LogChange("drivers", driver.ID, models.AuditActionDelete, driver, nil, nil)
	return nil
}

func (s *DriverService) resolveVehicleID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	vehicleID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid vehicle ID format")
	}
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Vehicle not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get vehicle")
	}
	return &vehicleID, nil
}

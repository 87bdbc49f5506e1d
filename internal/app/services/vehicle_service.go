package services

import (
	"github.com/google/uuid"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"gorm.io/gorm"
)

type VehicleService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
}

func NewVehicleService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *VehicleService {
	return &VehicleService{
		db:           db,
		validator:    validator,
		auditService: auditService,
	}
}

func (s *VehicleService) CreateVehicle(req *models.VehicleCreateRequest) (*models.Vehicle, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var existing models.Vehicle
	if err := s.db.Where("plate = ?", req.Plate).First(&existing).Error; err == nil {
		return nil, errors.NewConflictError("A vehicle with this plate already exists")
	}

	usageCategory := req.UsageCategory
	if usageCategory == "" {
		usageCategory = models.UsageCategoryOperational
	}

	vehicle := &models.Vehicle{
		Plate:                 req.Plate,
		Name:                  req.Name,
		Model:                 req.Model,
		FuelType:              req.FuelType,
		TankCapacityLiters:    req.TankCapacityLiters,
		UsageCategory:         usageCategory,
		MinExpectedKmPerLiter: req.MinExpectedKmPerLiter,
		MaxExpectedKmPerLiter: req.MaxExpectedKmPerLiter,
		Active:                true,
	}

	if err := s.db.Create(vehicle).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create vehicle")
	}

	s.auditService.LogChange("vehicles", vehicle.ID, models.AuditActionCreate, nil, vehicle, nil)
	return vehicle, nil
}

func (s *VehicleService) GetVehicle(id string) (*models.Vehicle, error) {
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
	return &vehicle, nil
}

func (s *VehicleService) GetVehicles(activeOnly bool, pagination *models.PaginationRequest) (*models.Pagination[[]models.Vehicle], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	query := s.db.Model(&models.Vehicle{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count vehicles")
	}

	var vehicles []models.Vehicle
	offset := (pagination.Page - 1) * pagination.Limit
	if err := query.Order("name asc").Limit(pagination.Limit).Offset(offset).Find(&vehicles).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get vehicles")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	return &models.Pagination[[]models.Vehicle]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      vehicles,
	}, nil
}

func (s *VehicleService) UpdateVehicle(id string, req *models.VehicleUpdateRequest) (*models.Vehicle, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	vehicle, err := s.GetVehicle(id)
	if err != nil {
		return nil, err
	}
	oldSnapshot := *vehicle

	if req.Plate != nil {
		vehicle.Plate = *req.Plate
	}
	if req.Name != nil {
		vehicle.Name = *req.Name
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.FuelType != nil {
		vehicle.FuelType = *req.FuelType
	}
	if req.TankCapacityLiters != nil {
		vehicle.TankCapacityLiters = req.TankCapacityLiters
	}
	if req.UsageCategory != nil {
		vehicle.UsageCategory = *req.UsageCategory
	}
	if req.MinExpectedKmPerLiter != nil {
		vehicle.MinExpectedKmPerLiter = req.MinExpectedKmPerLiter
	}
	if req.MaxExpectedKmPerLiter != nil {
		vehicle.MaxExpectedKmPerLiter = req.MaxExpectedKmPerLiter
	}
	if req.Active != nil {
		vehicle.Active = *req.Active
	}

	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update vehicle")
	}

	s.auditService.LogChange("vehicles", vehicle.ID, models.AuditActionUpdate, &oldSnapshot, vehicle, nil)
	return vehicle, nil
}

// DeleteVehicle hard-deletes a vehicle only while no transactions
// reference it; otherwise callers should retire it via active=false.
func (s *VehicleService) DeleteVehicle(id string) error {
	vehicle, err := s.GetVehicle(id)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.FuelTransaction{}).Where("vehicle_id = ?", vehicle.ID).Count(&txCount).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to count vehicle transactions")
	}
	if txCount > 0 {
		return errors.NewConflictError("Vehicle has fuel transactions; deactivate it instead")
	}

	if err := s.db.Delete(vehicle).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete vehicle")
	}

	s.auditService.LogChange("vehicles", vehicle.ID, models.AuditActionDelete, vehicle, nil, nil)
	return nil
}

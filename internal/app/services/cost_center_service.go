package services

import (
	"github.com/google/uuid"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"gorm.io/gorm"
)

type CostCenterService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
}

func NewCostCenterService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *CostCenterService {
	return &CostCenterService{
		db:           db,
		validator:    validator,
		auditService: auditService,
	}
}

func (s *CostCenterService) CreateCostCenter(req *models.CostCenterCreateRequest) (*models.CostCenter, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.CostCenterCategoryUrban
	}

	costCenter := &models.CostCenter{
		Name:     req.Name,
		Category: category,
		Active:   true,
	}

	if err := s.db.Create(costCenter).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create cost center")
	}

	s.auditService.LogChange("cost_centers", costCenter.ID, models.AuditActionCreate, nil, costCenter, nil)
	return costCenter, nil
}

func (s *CostCenterService) GetCostCenter(id string) (*models.CostCenter, error) {
	costCenterID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid cost center ID format")
	}

	var costCenter models.CostCenter
	err = s.db.First(&costCenter, "id = ?", costCenterID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Cost center not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get cost center")
	}
	return &costCenter, nil
}

func (s *CostCenterService) GetCostCenters(activeOnly bool) ([]models.CostCenter, error) {
	query := s.db.Model(&models.CostCenter{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var costCenters []models.CostCenter
	if err := query.Order("name asc").Find(&costCenters).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get cost centers")
	}
	return costCenters, nil
}

func (s *CostCenterService) UpdateCostCenter(id string, req *models.CostCenterUpdateRequest) (*models.CostCenter, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	costCenter, err := s.GetCostCenter(id)
	if err != nil {
		return nil, err
	}
	oldSnapshot := *costCenter

	if req.Name != nil {
		costCenter.Name = *req.Name
	}
	if req.Category != nil {
		costCenter.Category = *req.Category
	}
	if req.Active != nil {
		costCenter.Active = *req.Active
	}

	if err := s.db.Save(costCenter).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update cost center")
	}

	s.auditService.LogChange("cost_centers", costCenter.ID, models.AuditActionUpdate, &oldSnapshot, costCenter, nil)
	return costCenter, nil
}

func (s *CostCenterService) DeleteCostCenter(id string) error {
	costCenter, err := s.GetCostCenter(id)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.FuelTransaction{}).Where("cost_center_id = ?", costCenter.ID).Count(&txCount).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to count cost center transactions")
	}
	if txCount > 0 {
		return errors.NewConflictError("Cost center has fuel transactions; deactivate it instead")
	}

	if err := s.db.Delete(costCenter).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete cost center")
	}

	s.auditService.LogChange("cost_centers", costCenter.ID, models.AuditActionDelete, costCenter, nil, nil)
	return nil
}

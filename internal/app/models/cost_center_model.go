package models

import (
	"time"

	"github.com/google/uuid"
)

type CostCenterCategory string

const (
	CostCenterCategoryRural        CostCenterCategory = "RURAL"
	CostCenterCategoryUrban        CostCenterCategory = "URBAN"
	CostCenterCategoryInstallation CostCenterCategory = "INSTALLATION"
	CostCenterCategoryMaintenance  CostCenterCategory = "MAINTENANCE"
	CostCenterCategoryAdmin        CostCenterCategory = "ADMIN"
)

type CostCenter struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string             `json:"name" gorm:"type:varchar(100);not null"`
	Category  CostCenterCategory `json:"category" gorm:"type:varchar(20);not null;default:'URBAN'"`
	Active    bool               `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

type CostCenterCreateRequest struct {
	Name     string             `json:"name" validate:"required,max=100"`
	Category CostCenterCategory `json:"category" validate:"omitempty,oneof=RURAL URBAN INSTALLATION MAINTENANCE ADMIN"`
}

type CostCenterUpdateRequest struct {
	Name     *string             `json:"name,omitempty" validate:"omitempty,max=100"`
	Category *CostCenterCategory `json:"category,omitempty" validate:"omitempty,oneof=RURAL URBAN INSTALLATION MAINTENANCE ADMIN"`
	Active   *bool               `json:"active,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FuelType string

const (
	FuelTypeGasoline FuelType = "GASOLINE"
	FuelTypeEthanol  FuelType = "ETHANOL"
	FuelTypeDiesel   FuelType = "DIESEL"
)

type UsageCategory string

const (
	UsageCategoryOperational UsageCategory = "OPERATIONAL"
	UsageCategoryPersonal    UsageCategory = "PERSONAL"
)

type Vehicle struct {
	ID                    uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Plate                 string           `json:"plate" gorm:"type:varchar(10);uniqueIndex;not null"`
	Name                  string           `json:"name" gorm:"type:varchar(100);not null"`
	Model                 string           `json:"model" gorm:"type:varchar(100)"`
	FuelType              FuelType         `json:"fuel_type" gorm:"type:varchar(20);not null;default:'GASOLINE'"`
	TankCapacityLiters    *decimal.Decimal `json:"tank_capacity_liters,omitempty" gorm:"type:decimal(6,2)"`
	UsageCategory         UsageCategory    `json:"usage_category" gorm:"type:varchar(20);not null;default:'OPERATIONAL'"`
	MinExpectedKmPerLiter *decimal.Decimal `json:"min_expected_km_per_liter,omitempty" gorm:"type:decimal(5,2)"`
	MaxExpectedKmPerLiter *decimal.Decimal `json:"max_expected_km_per_liter,omitempty" gorm:"type:decimal(5,2)"`
	Active                bool             `json:"active" gorm:"not null;default:true"`
	CreatedAt             time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

type VehicleCreateRequest struct {
	Plate                 string           `json:"plate" validate:"required,max=10"`
	Name                  string           `json:"name" validate:"required,max=100"`
	Model                 string           `json:"model" validate:"omitempty,max=100"`
	FuelType              FuelType         `json:"fuel_type" validate:"required,oneof=GASOLINE ETHANOL DIESEL"`
	TankCapacityLiters    *decimal.Decimal `json:"tank_capacity_liters,omitempty" validate:"omitempty"`
	UsageCategory         UsageCategory    `json:"usage_category" validate:"omitempty,oneof=OPERATIONAL PERSONAL"`
	MinExpectedKmPerLiter *decimal.Decimal `json:"min_expected_km_per_liter,omitempty" validate:"omitempty"`
	MaxExpectedKmPerLiter *decimal.Decimal `json:"max_expected_km_per_liter,omitempty" validate:"omitempty"`
}

type VehicleUpdateRequest struct {
	Plate                 *string          `json:"plate,omitempty" validate:"omitempty,max=10"`
	Name                  *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Model                 *string          `json:"model,omitempty" validate:"omitempty,max=100"`
	FuelType              *FuelType        `json:"fuel_type,omitempty" validate:"omitempty,oneof=GASOLINE ETHANOL DIESEL"`
	TankCapacityLiters    *decimal.Decimal `json:"tank_capacity_liters,omitempty"`
	UsageCategory         *UsageCategory   `json:"usage_category,omitempty" validate:"omitempty,oneof=OPERATIONAL PERSONAL"`
	MinExpectedKmPerLiter *decimal.Decimal `json:"min_expected_km_per_liter,omitempty"`
	MaxExpectedKmPerLiter *decimal.Decimal `json:"max_expected_km_per_liter,omitempty"`
	Active                *bool            `json:"active,omitempty"`
}

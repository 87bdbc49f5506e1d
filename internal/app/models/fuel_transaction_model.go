package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// totalCostTolerance is the rounding tolerance allowed between a
// caller-supplied total_cost and liters * unit_price. Differences
// above it are recomputed.
var totalCostTolerance = decimal.NewFromFloat(0.01)

type FuelTransaction struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID      uuid.UUID       `json:"vehicle_id" gorm:"type:uuid;not null;index:idx_tx_vehicle_purchased,priority:1"`
	DriverID       *uuid.UUID      `json:"driver_id,omitempty" gorm:"type:uuid"`
	StationID      *uuid.UUID      `json:"station_id,omitempty" gorm:"type:uuid"`
	CostCenterID   *uuid.UUID      `json:"cost_center_id,omitempty" gorm:"type:uuid"`
	PurchasedAt    time.Time       `json:"purchased_at" gorm:"not null;index;index:idx_tx_vehicle_purchased,priority:2,sort:desc"`
	Liters         decimal.Decimal `json:"liters" gorm:"type:decimal(8,3);not null"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:decimal(8,4);not null"`
	TotalCost      decimal.Decimal `json:"total_cost" gorm:"type:decimal(10,2);not null"`
	OdometerKm     int64           `json:"odometer_km" gorm:"not null"`
	FuelType       FuelType        `json:"fuel_type" gorm:"type:varchar(20);not null;default:'GASOLINE'"`
	Notes          string          `json:"notes" gorm:"type:text"`
	AttachmentPath *string         `json:"attachment_path,omitempty" gorm:"type:varchar(500)"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Vehicle    Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Driver     *Driver      `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Station    *FuelStation `json:"station,omitempty" gorm:"foreignKey:StationID"`
	CostCenter *CostCenter  `json:"cost_center,omitempty" gorm:"foreignKey:CostCenterID"`

	// KmPerLiter is derived against the previous transaction at read
	// time and never persisted.
	KmPerLiter *decimal.Decimal `json:"km_per_liter,omitempty" gorm:"-"`
}

// ComputeTotalCost returns liters * unit_price rounded to cents.
func ComputeTotalCost(liters, unitPrice decimal.Decimal) decimal.Decimal {
	return liters.Mul(unitPrice).Round(2)
}

// ResolveTotalCost applies the write policy for total_cost: a missing
// or disagreeing caller value (beyond rounding tolerance) is replaced
// by the computed amount.
func ResolveTotalCost(liters, unitPrice decimal.Decimal, supplied *decimal.Decimal) decimal.Decimal {
	calculated := ComputeTotalCost(liters, unitPrice)
	if supplied == nil || supplied.IsZero() {
		return calculated
	}
	if supplied.Sub(calculated).Abs().GreaterThan(totalCostTolerance) {
		return calculated
	}
	return *supplied
}

// ConsumptionKmPerLiter returns the km/L achieved between a previous
// odometer reading and this transaction, nil when the odometer did not
// move forward or liters is not positive.
func (t *FuelTransaction) ConsumptionKmPerLiter(previousOdometerKm int64) *decimal.Decimal {
	if t.OdometerKm <= previousOdometerKm || !t.Liters.IsPositive() {
		return nil
	}
	kmTraveled := decimal.NewFromInt(t.OdometerKm - previousOdometerKm)
	kmPerLiter := kmTraveled.Div(t.Liters).Round(2)
	return &kmPerLiter
}

type FuelTransactionCreateRequest struct {
	VehicleID    string           `json:"vehicle_id" validate:"required,uuid"`
	DriverID     *string          `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	StationID    *string          `json:"station_id,omitempty" validate:"omitempty,uuid"`
	CostCenterID *string          `json:"cost_center_id,omitempty" validate:"omitempty,uuid"`
	PurchasedAt  time.Time        `json:"purchased_at" validate:"required"`
	Liters       decimal.Decimal  `json:"liters" validate:"required"`
	UnitPrice    decimal.Decimal  `json:"unit_price" validate:"required"`
	TotalCost    *decimal.Decimal `json:"total_cost,omitempty"`
	OdometerKm   int64            `json:"odometer_km" validate:"min=0"`
	FuelType     FuelType         `json:"fuel_type" validate:"omitempty,oneof=GASOLINE ETHANOL DIESEL"`
	Notes        string           `json:"notes" validate:"omitempty,max=2000"`
}

type FuelTransactionUpdateRequest struct {
	DriverID     *string          `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	StationID    *string          `json:"station_id,omitempty" validate:"omitempty,uuid"`
	CostCenterID *string          `json:"cost_center_id,omitempty" validate:"omitempty,uuid"`
	PurchasedAt  *time.Time       `json:"purchased_at,omitempty"`
	Liters       *decimal.Decimal `json:"liters,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	OdometerKm   *int64           `json:"odometer_km,omitempty" validate:"omitempty,min=0"`
	FuelType     *FuelType        `json:"fuel_type,omitempty" validate:"omitempty,oneof=GASOLINE ETHANOL DIESEL"`
	Notes        *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type FuelTransactionFilter struct {
	FromDate     *time.Time
	ToDate       *time.Time
	VehicleID    *uuid.UUID
	DriverID     *uuid.UUID
	StationID    *uuid.UUID
	CostCenterID *uuid.UUID
	FuelType     *FuelType
}

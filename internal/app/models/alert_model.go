package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertTypeOdometerRegression AlertType = "ODOMETER_REGRESSION"
	AlertTypeLitersOverTank     AlertType = "LITERS_OVER_TANK"
	AlertTypeOutlierConsumption AlertType = "OUTLIER_CONSUMPTION"
	AlertTypePersonalUsage      AlertType = "PERSONAL_USAGE"
)

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "INFO"
	AlertSeverityWarn     AlertSeverity = "WARN"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// Alert is append-only: rows are created by the evaluator and only
// ever mutated by an explicit resolve.
type Alert struct {
	ID                uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID         uuid.UUID     `json:"vehicle_id" gorm:"type:uuid;not null;index:idx_alert_vehicle_created,priority:1"`
	FuelTransactionID *uuid.UUID    `json:"fuel_transaction_id,omitempty" gorm:"type:uuid"`
	Type              AlertType     `json:"type" gorm:"type:varchar(30);not null;index"`
	Severity          AlertSeverity `json:"severity" gorm:"type:varchar(10);not null;default:'WARN'"`
	Message           string        `json:"message" gorm:"type:text;not null"`
	ResolvedAt        *time.Time    `json:"resolved_at,omitempty" gorm:"index"`
	CreatedAt         time.Time     `json:"created_at" gorm:"autoCreateTime;index:idx_alert_vehicle_created,priority:2,sort:desc"`
	UpdatedAt         time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Vehicle         Vehicle          `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	FuelTransaction *FuelTransaction `json:"fuel_transaction,omitempty" gorm:"foreignKey:FuelTransactionID"`
}

func (a *Alert) IsResolved() bool {
	return a.ResolvedAt != nil
}

type AlertFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	VehicleID *uuid.UUID
	Type      *AlertType
	Severity  *AlertSeverity
	Resolved  *bool
}

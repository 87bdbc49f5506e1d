package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FuelPriceSource string

const (
	FuelPriceSourceLastTransaction FuelPriceSource = "last_transaction"
	FuelPriceSourceManual          FuelPriceSource = "manual"
	FuelPriceSourceExternalAnp     FuelPriceSource = "external_anp"
)

// FuelPriceSnapshot is the single current reference price for a
// (fuel_type, station, source) key. Writes replace the row in place,
// no history is kept.
type FuelPriceSnapshot struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FuelType      FuelType        `json:"fuel_type" gorm:"type:varchar(20);not null;uniqueIndex:uniq_price_key,priority:1"`
	StationID     *uuid.UUID      `json:"station_id,omitempty" gorm:"type:uuid;uniqueIndex:uniq_price_key,priority:2"`
	PricePerLiter decimal.Decimal `json:"price_per_liter" gorm:"type:decimal(8,4);not null"`
	CollectedAt   time.Time       `json:"collected_at" gorm:"not null;index"`
	Source        FuelPriceSource `json:"source" gorm:"type:varchar(30);not null;default:'last_transaction';uniqueIndex:uniq_price_key,priority:3"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Station *FuelStation `json:"station,omitempty" gorm:"foreignKey:StationID"`
}

type NationalPriceUpsertRequest struct {
	FuelType      FuelType        `json:"fuel_type" validate:"required,oneof=GASOLINE ETHANOL DIESEL"`
	PricePerLiter decimal.Decimal `json:"price_per_liter" validate:"required"`
	CollectedAt   *time.Time      `json:"collected_at,omitempty"`
}

type LatestPriceResponse struct {
	FuelType      FuelType        `json:"fuel_type"`
	PricePerLiter decimal.Decimal `json:"price_per_liter"`
	CollectedAt   time.Time       `json:"collected_at"`
	Source        FuelPriceSource `json:"source"`
	StationID     *uuid.UUID      `json:"station_id"`
	StationName   *string         `json:"station_name"`
}

type FuelPriceFilter struct {
	FuelType  *FuelType
	StationID *uuid.UUID
	Source    *FuelPriceSource
}

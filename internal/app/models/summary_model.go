package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SummaryPeriod struct {
	From            string `json:"from"`
	To              string `json:"to"`
	IncludePersonal bool   `json:"include_personal"`
}

type SummaryTotals struct {
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalLiters      decimal.Decimal `json:"total_liters"`
	TransactionCount int64           `json:"transaction_count"`
}

type VehicleCostSummary struct {
	VehicleID        uuid.UUID       `json:"vehicle_id"`
	VehicleName      string          `json:"vehicle_name"`
	VehiclePlate     string          `json:"vehicle_plate"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalLiters      decimal.Decimal `json:"total_liters"`
	TransactionCount int64           `json:"transaction_count"`
	// Nil with fewer than two transactions in the period or when the
	// odometer did not advance.
	KmPerLiter *decimal.Decimal `json:"km_per_liter"`
	CostPerKm  *decimal.Decimal `json:"cost_per_km"`
}

type MonthlyTrendEntry struct {
	Month       string          `json:"month"` // YYYY-MM
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalLiters decimal.Decimal `json:"total_liters"`
}

// PriceReference compares actual spend against the national average
// reference price for the fuel types seen in the period. All
// reference-dependent fields are nil when no snapshot covers a fuel
// type.
type PriceReference struct {
	NationalAvgPrice *decimal.Decimal `json:"national_avg_price"`
	CoverageLiters   decimal.Decimal  `json:"coverage_liters"`
	CoverageRatio    decimal.Decimal  `json:"coverage_ratio"`
	ExpectedCost     *decimal.Decimal `json:"expected_cost"`
	ActualCost       *decimal.Decimal `json:"actual_cost"`
	Delta            *decimal.Decimal `json:"delta"`
	DeltaPercent     *decimal.Decimal `json:"delta_percent"`
}

type AlertSummaryEntry struct {
	ID          uuid.UUID     `json:"id"`
	VehicleName string        `json:"vehicle_name"`
	Type        AlertType     `json:"type"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	CreatedAt   time.Time     `json:"created_at"`
}

type AlertsSummary struct {
	OpenCount int64               `json:"open_count"`
	TopAlerts []AlertSummaryEntry `json:"top_alerts"`
}

type DashboardSummary struct {
	Period         SummaryPeriod        `json:"period"`
	Summary        SummaryTotals        `json:"summary"`
	PriceReference PriceReference       `json:"price_reference"`
	CostByVehicle  []VehicleCostSummary `json:"cost_by_vehicle"`
	MonthlyTrend   []MonthlyTrendEntry  `json:"monthly_trend"`
	Alerts         AlertsSummary        `json:"alerts"`
}

type SummaryFilter struct {
	From            time.Time
	To              time.Time
	IncludePersonal bool
	VehicleID       *uuid.UUID
	CostCenterID    *uuid.UUID
}

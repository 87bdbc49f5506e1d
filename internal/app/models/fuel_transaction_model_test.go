package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotalCostRoundsToCents(t *testing.T) {
	liters := decimal.RequireFromString("42.513")
	unitPrice := decimal.RequireFromString("5.899")

	total := ComputeTotalCost(liters, unitPrice)
	assert.Equal(t, "250.78", total.String())
}

func TestResolveTotalCostMissingSupplied(t *testing.T) {
	liters := decimal.RequireFromString("40")
	unitPrice := decimal.RequireFromString("5.89")

	total := ResolveTotalCost(liters, unitPrice, nil)
	assert.Equal(t, "235.6", total.String())
}

func TestResolveTotalCostZeroSupplied(t *testing.T) {
	liters := decimal.RequireFromString("40")
	unitPrice := decimal.RequireFromString("5.89")
	zero := decimal.Zero

	total := ResolveTotalCost(liters, unitPrice, &zero)
	assert.Equal(t, "235.6", total.String())
}

func TestResolveTotalCostWithinTolerance(t *testing.T) {
	liters := decimal.RequireFromString("40")
	unitPrice := decimal.RequireFromString("5.89")
	supplied := decimal.RequireFromString("235.61")

	total := ResolveTotalCost(liters, unitPrice, &supplied)
	assert.True(t, total.Equal(supplied))
}

func TestResolveTotalCostBeyondToleranceRecomputed(t *testing.T) {
	liters := decimal.RequireFromString("40")
	unitPrice := decimal.RequireFromString("5.89")
	supplied := decimal.RequireFromString("300.00")

	total := ResolveTotalCost(liters, unitPrice, &supplied)
	assert.Equal(t, "235.6", total.String())
}

func TestConsumptionKmPerLiter(t *testing.T) {
	tx := &FuelTransaction{
		OdometerKm: 45400,
		Liters:     decimal.RequireFromString("40"),
	}

	kmPerLiter := tx.ConsumptionKmPerLiter(45000)
	assert.NotNil(t, kmPerLiter)
	assert.Equal(t, "10", kmPerLiter.String())
}

func TestConsumptionKmPerLiterOdometerBackwards(t *testing.T) {
	tx := &FuelTransaction{
		OdometerKm: 44900,
		Liters:     decimal.RequireFromString("40"),
	}

	assert.Nil(t, tx.ConsumptionKmPerLiter(45000))
}

func TestConsumptionKmPerLiterZeroLiters(t *testing.T) {
	tx := &FuelTransaction{
		OdometerKm: 45400,
		Liters:     decimal.Zero,
	}

	assert.Nil(t, tx.ConsumptionKmPerLiter(45000))
}

package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/topnet/fleetfuel-core/internal/app/models"
)

func periodTx(vehicle *models.Vehicle, purchasedAt time.Time, odometerKm int64, liters, unitPrice string) models.FuelTransaction {
	litersDec := decimal.RequireFromString(liters)
	priceDec := decimal.RequireFromString(unitPrice)
	return models.FuelTransaction{
		ID:          uuid.New(),
		VehicleID:   vehicle.ID,
		Vehicle:     *vehicle,
		PurchasedAt: purchasedAt,
		OdometerKm:  odometerKm,
		Liters:      litersDec,
		UnitPrice:   priceDec,
		TotalCost:   models.ComputeTotalCost(litersDec, priceDec),
		FuelType:    vehicle.FuelType,
	}
}

func TestSummarizeTotalsEmpty(t *testing.T) {
	totals := summarizeTotals(nil)

	assert.True(t, totals.TotalCost.IsZero())
	assert.True(t, totals.TotalLiters.IsZero())
	assert.Equal(t, int64(0), totals.TransactionCount)
}

func TestSummarizeTotals(t *testing.T) {
	vehicle := testVehicle()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	transactions := []models.FuelTransaction{
		periodTx(vehicle, day, 45000, "40", "5.00"),
		periodTx(vehicle, day.AddDate(0, 0, 5), 45400, "30", "6.00"),
	}

	totals := summarizeTotals(transactions)

	assert.Equal(t, "380", totals.TotalCost.String())
	assert.Equal(t, "70", totals.TotalLiters.String())
	assert.Equal(t, int64(2), totals.TransactionCount)
}

func TestSummarizeByVehicleOrdersByCostDesc(t *testing.T) {
	cheap := testVehicle()
	cheap.Name = "Cheap"
	expensive := testVehicle()
	expensive.Name = "Expensive"
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []models.FuelTransaction{
		periodTx(cheap, day, 45000, "10", "5.00"),
		periodTx(expensive, day, 80000, "50", "6.00"),
	}

	summaries := summarizeByVehicle(transactions)

	assert.Len(t, summaries, 2)
	assert.Equal(t, "Expensive", summaries[0].VehicleName)
	assert.Equal(t, "Cheap", summaries[1].VehicleName)
}

func TestSummarizeByVehicleConsumption(t *testing.T) {
	vehicle := testVehicle()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	transactions := []models.FuelTransaction{
		periodTx(vehicle, day, 45000, "40", "5.00"),
		periodTx(vehicle, day.AddDate(0, 0, 7), 45400, "40", "5.00"),
	}

	summaries := summarizeByVehicle(transactions)

	assert.Len(t, summaries, 1)
	entry := summaries[0]
	assert.Equal(t, int64(2), entry.TransactionCount)
	// 400 km on 80 L.
	assert.NotNil(t, entry.KmPerLiter)
	assert.Equal(t, "5", entry.KmPerLiter.String())
	// R$400 over 400 km.
	assert.NotNil(t, entry.CostPerKm)
	assert.Equal(t, "1", entry.CostPerKm.String())
}

func TestVehicleConsumptionSingleTransaction(t *testing.T) {
	vehicle := testVehicle()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	transactions := []models.FuelTransaction{
		periodTx(vehicle, day, 45000, "40", "5.00"),
	}

	kmPerLiter, costPerKm := vehicleConsumption(transactions, decimal.NewFromInt(200), decimal.NewFromInt(40))
	assert.Nil(t, kmPerLiter)
	assert.Nil(t, costPerKm)
}

func TestVehicleConsumptionOdometerNotAdvancing(t *testing.T) {
	vehicle := testVehicle()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	transactions := []models.FuelTransaction{
		periodTx(vehicle, day, 45000, "40", "5.00"),
		periodTx(vehicle, day.AddDate(0, 0, 7), 45000, "40", "5.00"),
	}

	kmPerLiter, costPerKm := vehicleConsumption(transactions, decimal.NewFromInt(400), decimal.NewFromInt(80))
	assert.Nil(t, kmPerLiter)
	assert.Nil(t, costPerKm)
}

func TestSummarizePriceReference(t *testing.T) {
	vehicle := testVehicle()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	// 40 L at 6.00 = 240 actual; reference 5.50 expects 220.
	transactions := []models.FuelTransaction{
		periodTx(vehicle, day, 45000, "40", "6.00"),
	}
	references := map[models.FuelType]decimal.Decimal{
		models.FuelTypeGasoline: decimal.RequireFromString("5.50"),
	}

	reference := summarizePriceReference(transactions, references)

	assert.Equal(t, "40", reference.CoverageLiters.String())
	assert.Equal(t, "1", reference.CoverageRatio.String())
	assert.NotNil(t, reference.ExpectedCost)
	assert.Equal(t, "220", reference.ExpectedCost.String())
	assert.NotNil(t, reference.ActualCost)
	assert.Equal(t, "240", reference.ActualCost.String())
	assert.NotNil(t, reference.Delta)
	assert.Equal(t, "20", reference.Delta.String())
	assert.NotNil(t, reference.DeltaPercent)
	assert.Equal(t, "9.09", reference.DeltaPercent.String())
}

func TestSummarizePriceReferencePartialCoverage(t *testing.T) {
	gasolineVehicle := testVehicle()
	dieselVehicle := testVehicle()
	dieselVehicle.FuelType = models.FuelTypeDiesel
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []models.FuelTransaction{
		periodTx(gasolineVehicle, day, 45000, "30", "6.00"),
		periodTx(dieselVehicle, day, 80000, "70", "6.20"),
	}
	references := map[models.FuelType]decimal.Decimal{
		models.FuelTypeGasoline: decimal.RequireFromString("5.50"),
	}

	reference := summarizePriceReference(transactions, references)

	assert.Equal(t, "30", reference.CoverageLiters.String())
	assert.Equal(t, "0.3", reference.CoverageRatio.String())
	assert.NotNil(t, reference.ActualCost)
	// Only the covered gasoline spend is compared.
	assert.Equal(t, "180", reference.ActualCost.String())
}

func TestSummarizePriceReferenceNoCoverage(t *testing.T) {
	vehicle := testVehicle()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	transactions := []models.FuelTransaction{
		periodTx(vehicle, day, 45000, "40", "6.00"),
	}

	reference := summarizePriceReference(transactions, map[models.FuelType]decimal.Decimal{})

	assert.True(t, reference.CoverageLiters.IsZero())
	assert.True(t, reference.CoverageRatio.IsZero())
	assert.Nil(t, reference.NationalAvgPrice)
	assert.Nil(t, reference.ExpectedCost)
	assert.Nil(t, reference.ActualCost)
	assert.Nil(t, reference.Delta)
	assert.Nil(t, reference.DeltaPercent)
}

func TestBucketByMonth(t *testing.T) {
	vehicle := testVehicle()
	transactions := []models.FuelTransaction{
		periodTx(vehicle, time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), 46000, "30", "5.00"),
		periodTx(vehicle, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 45000, "40", "5.00"),
		periodTx(vehicle, time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC), 45500, "20", "5.00"),
	}

	entries := bucketByMonth(transactions)

	assert.Len(t, entries, 2)
	assert.Equal(t, "2025-01", entries[0].Month)
	assert.Equal(t, "300", entries[0].TotalCost.String())
	assert.Equal(t, "60", entries[0].TotalLiters.String())
	assert.Equal(t, "2025-02", entries[1].Month)
	assert.Equal(t, "150", entries[1].TotalCost.String())
}

func TestDistinctFuelTypes(t *testing.T) {
	gasolineVehicle := testVehicle()
	dieselVehicle := testVehicle()
	dieselVehicle.FuelType = models.FuelTypeDiesel
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []models.FuelTransaction{
		periodTx(gasolineVehicle, day, 45000, "40", "5.00"),
		periodTx(gasolineVehicle, day, 45400, "40", "5.00"),
		periodTx(dieselVehicle, day, 80000, "70", "6.20"),
	}

	fuelTypes := distinctFuelTypes(transactions)
	assert.Len(t, fuelTypes, 2)
	assert.Contains(t, fuelTypes, models.FuelTypeGasoline)
	assert.Contains(t, fuelTypes, models.FuelTypeDiesel)
}

package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/topnet/fleetfuel-core/internal/app/models"
)

func testVehicle() *models.Vehicle {
	tank := decimal.NewFromInt(60)
	minKmL := decimal.NewFromInt(8)
	maxKmL := decimal.NewFromInt(15)
	return &models.Vehicle{
		ID:                    uuid.New(),
		Plate:                 "ABC1D23",
		Name:                  "Strada 01",
		FuelType:              models.FuelTypeGasoline,
		UsageCategory:         models.UsageCategoryOperational,
		TankCapacityLiters:    &tank,
		MinExpectedKmPerLiter: &minKmL,
		MaxExpectedKmPerLiter: &maxKmL,
		Active:                true,
	}
}

func testTransaction(vehicle *models.Vehicle, odometerKm int64, liters string) *models.FuelTransaction {
	litersDec := decimal.RequireFromString(liters)
	return &models.FuelTransaction{
		ID:         uuid.New(),
		VehicleID:  vehicle.ID,
		OdometerKm: odometerKm,
		Liters:     litersDec,
		UnitPrice:  decimal.RequireFromString("5.89"),
		TotalCost:  models.ComputeTotalCost(litersDec, decimal.RequireFromString("5.89")),
		FuelType:   vehicle.FuelType,
	}
}

func TestEvaluateRulesNoViolations(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 45400, "40")

	alerts := evaluateRules(vehicle, tx, previous, nil)
	assert.Empty(t, alerts)
}

func TestCheckOdometerRegressionWarn(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 44800, "40")

	alert := checkOdometerRegression(vehicle, tx, previous)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertTypeOdometerRegression, alert.Type)
	assert.Equal(t, models.AlertSeverityWarn, alert.Severity)
	assert.Contains(t, alert.Message, "45000")
	assert.Contains(t, alert.Message, "44800")
}

func TestCheckOdometerRegressionCritical(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 43500, "40")

	alert := checkOdometerRegression(vehicle, tx, previous)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertSeverityCritical, alert.Severity)
}

func TestCheckOdometerRegressionExactlyThresholdStaysWarn(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 44000, "40")

	alert := checkOdometerRegression(vehicle, tx, previous)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertSeverityWarn, alert.Severity)
}

func TestCheckOdometerRegressionFirstTransaction(t *testing.T) {
	vehicle := testVehicle()
	tx := testTransaction(vehicle, 45000, "40")

	assert.Nil(t, checkOdometerRegression(vehicle, tx, nil))
}

func TestCheckOdometerRegressionEqualOdometer(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 45000, "40")

	assert.Nil(t, checkOdometerRegression(vehicle, tx, previous))
}

func TestCheckLitersOverTank(t *testing.T) {
	vehicle := testVehicle()
	tx := testTransaction(vehicle, 45400, "60.5")

	alert := checkLitersOverTank(vehicle, tx)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertTypeLitersOverTank, alert.Type)
	assert.Equal(t, models.AlertSeverityWarn, alert.Severity)
}

func TestCheckLitersOverTankExactCapacity(t *testing.T) {
	vehicle := testVehicle()
	tx := testTransaction(vehicle, 45400, "60")

	assert.Nil(t, checkLitersOverTank(vehicle, tx))
}

func TestCheckLitersOverTankUnknownCapacity(t *testing.T) {
	vehicle := testVehicle()
	vehicle.TankCapacityLiters = nil
	tx := testTransaction(vehicle, 45400, "80")

	assert.Nil(t, checkLitersOverTank(vehicle, tx))
}

func TestCheckOutlierConsumptionTooLow(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	// 200 km on 40 L = 5 km/L, below the 8 km/L floor.
	tx := testTransaction(vehicle, 45200, "40")

	alert := checkOutlierConsumption(vehicle, tx, previous)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertTypeOutlierConsumption, alert.Type)
	assert.Equal(t, models.AlertSeverityWarn, alert.Severity)
	assert.Contains(t, alert.Message, "too low")
}

func TestCheckOutlierConsumptionTooHigh(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	// 800 km on 40 L = 20 km/L, above the 15 km/L ceiling.
	tx := testTransaction(vehicle, 45800, "40")

	alert := checkOutlierConsumption(vehicle, tx, previous)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertSeverityInfo, alert.Severity)
	assert.Contains(t, alert.Message, "odometer entry errors")
}

func TestCheckOutlierConsumptionWithinBounds(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	// 400 km on 40 L = 10 km/L.
	tx := testTransaction(vehicle, 45400, "40")

	assert.Nil(t, checkOutlierConsumption(vehicle, tx, previous))
}

func TestCheckOutlierConsumptionNoBoundsConfigured(t *testing.T) {
	vehicle := testVehicle()
	vehicle.MinExpectedKmPerLiter = nil
	vehicle.MaxExpectedKmPerLiter = nil
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 45200, "40")

	assert.Nil(t, checkOutlierConsumption(vehicle, tx, previous))
}

func TestCheckOutlierConsumptionOdometerNotForward(t *testing.T) {
	vehicle := testVehicle()
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 44900, "40")

	assert.Nil(t, checkOutlierConsumption(vehicle, tx, previous))
}

func TestCheckPersonalUsage(t *testing.T) {
	vehicle := testVehicle()
	vehicle.UsageCategory = models.UsageCategoryPersonal
	tx := testTransaction(vehicle, 45400, "40")
	costCenter := &models.CostCenter{Name: "Obras Urbanas", Category: models.CostCenterCategoryUrban}

	alert := checkPersonalUsage(vehicle, tx, costCenter)
	assert.NotNil(t, alert)
	assert.Equal(t, models.AlertTypePersonalUsage, alert.Type)
	assert.Equal(t, models.AlertSeverityInfo, alert.Severity)
}

func TestCheckPersonalUsageAdminCostCenter(t *testing.T) {
	vehicle := testVehicle()
	vehicle.UsageCategory = models.UsageCategoryPersonal
	tx := testTransaction(vehicle, 45400, "40")
	costCenter := &models.CostCenter{Name: "Administrativo", Category: models.CostCenterCategoryAdmin}

	assert.Nil(t, checkPersonalUsage(vehicle, tx, costCenter))
}

func TestCheckPersonalUsageOperationalVehicle(t *testing.T) {
	vehicle := testVehicle()
	tx := testTransaction(vehicle, 45400, "40")
	costCenter := &models.CostCenter{Name: "Obras Urbanas", Category: models.CostCenterCategoryUrban}

	assert.Nil(t, checkPersonalUsage(vehicle, tx, costCenter))
}

func TestCheckPersonalUsageNoCostCenter(t *testing.T) {
	vehicle := testVehicle()
	vehicle.UsageCategory = models.UsageCategoryPersonal
	tx := testTransaction(vehicle, 45400, "40")

	assert.Nil(t, checkPersonalUsage(vehicle, tx, nil))
}

func TestEvaluateRulesMultipleViolations(t *testing.T) {
	vehicle := testVehicle()
	vehicle.UsageCategory = models.UsageCategoryPersonal
	previous := testTransaction(vehicle, 45000, "40")
	tx := testTransaction(vehicle, 44800, "65")
	costCenter := &models.CostCenter{Name: "Obras Rurais", Category: models.CostCenterCategoryRural}

	alerts := evaluateRules(vehicle, tx, previous, costCenter)

	types := make([]models.AlertType, 0, len(alerts))
	for _, alert := range alerts {
		types = append(types, alert.Type)
	}
	assert.Contains(t, types, models.AlertTypeOdometerRegression)
	assert.Contains(t, types, models.AlertTypeLitersOverTank)
	assert.Contains(t, types, models.AlertTypePersonalUsage)
	assert.NotContains(t, types, models.AlertTypeOutlierConsumption)
	assert.Len(t, alerts, 3)
}

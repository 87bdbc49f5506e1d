package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/topnet/fleetfuel-core/internal/app/models"
)

func importLookups() (map[string]*models.Vehicle, map[string]*models.Driver, map[string]*models.FuelStation, map[string]*models.CostCenter) {
	vehicle := testVehicle()
	driver := &models.Driver{ID: uuid.New(), Name: "João Silva", Active: true}
	station := &models.FuelStation{ID: uuid.New(), Name: "Posto Central", Active: true}
	costCenter := &models.CostCenter{ID: uuid.New(), Name: "Frota Urbana", Category: models.CostCenterCategoryUrban, Active: true}

	vehicles := map[string]*models.Vehicle{"ABC1D23": vehicle}
	drivers := map[string]*models.Driver{"joão silva": driver}
	stations := map[string]*models.FuelStation{"posto central": station}
	costCenters := map[string]*models.CostCenter{"frota urbana": costCenter}
	return vehicles, drivers, stations, costCenters
}

func TestResolveColumnsPortugueseHeaders(t *testing.T) {
	header := []string{"Placa", "Data", "Litros", "Preço Unitário", "Valor Total", "Odômetro", "Combustível"}

	columns, err := resolveColumns(header)
	assert.NoError(t, err)
	assert.Equal(t, 0, columns["plate"])
	assert.Equal(t, 1, columns["purchased_at"])
	assert.Equal(t, 2, columns["liters"])
	assert.Equal(t, 3, columns["unit_price"])
	assert.Equal(t, 4, columns["total_cost"])
	assert.Equal(t, 5, columns["odometer_km"])
	assert.Equal(t, 6, columns["fuel_type"])
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	header := []string{"Placa", "Data", "Litros"}

	_, err := resolveColumns(header)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unit_price")
	assert.Contains(t, err.Error(), "odometer_km")
}

func TestParseRowValid(t *testing.T) {
	vehicles, drivers, stations, costCenters := importLookups()
	columns, err := resolveColumns([]string{"placa", "data", "litros", "preco_unitario", "valor_total", "odometro", "combustivel", "motorista", "posto", "centro_de_custo"})
	assert.NoError(t, err)

	svc := &ImportService{}
	record := []string{"ABC1D23", "15/01/2025", "42,500", "5,89", "250,33", "45230", "GASOLINA", "João Silva", "Posto Central", "Frota Urbana"}

	row, rowErrors := svc.parseRow(2, record, columns, vehicles, drivers, stations, costCenters)
	assert.Empty(t, rowErrors)
	assert.NotNil(t, row)
	assert.Equal(t, vehicles["ABC1D23"].ID.String(), row.request.VehicleID)
	assert.Equal(t, "42.5", row.request.Liters.String())
	assert.Equal(t, "5.89", row.request.UnitPrice.String())
	assert.NotNil(t, row.request.TotalCost)
	assert.Equal(t, "250.33", row.request.TotalCost.String())
	assert.Equal(t, int64(45230), row.request.OdometerKm)
	assert.Equal(t, models.FuelTypeGasoline, row.request.FuelType)
	assert.NotNil(t, row.request.DriverID)
	assert.NotNil(t, row.request.StationID)
	assert.NotNil(t, row.request.CostCenterID)
	assert.Equal(t, time.January, row.request.PurchasedAt.Month())
}

func TestParseRowUnknownPlate(t *testing.T) {
	vehicles, drivers, stations, costCenters := importLookups()
	columns, _ := resolveColumns([]string{"placa", "data", "litros", "preco_unitario", "odometro"})

	svc := &ImportService{}
	record := []string{"ZZZ9Z99", "15/01/2025", "42,500", "5,89", "45230"}

	row, rowErrors := svc.parseRow(2, record, columns, vehicles, drivers, stations, costCenters)
	assert.Nil(t, row)
	assert.Len(t, rowErrors, 1)
	assert.Equal(t, "plate", rowErrors[0].Column)
	assert.Equal(t, 2, rowErrors[0].Row)
}

func TestParseRowCollectsAllCellErrors(t *testing.T) {
	vehicles, drivers, stations, costCenters := importLookups()
	columns, _ := resolveColumns([]string{"placa", "data", "litros", "preco_unitario", "odometro"})

	svc := &ImportService{}
	record := []string{"ABC1D23", "not-a-date", "-5", "abc", "xyz"}

	row, rowErrors := svc.parseRow(3, record, columns, vehicles, drivers, stations, costCenters)
	assert.Nil(t, row)

	failedColumns := make([]string, 0, len(rowErrors))
	for _, rowError := range rowErrors {
		failedColumns = append(failedColumns, rowError.Column)
	}
	assert.Contains(t, failedColumns, "purchased_at")
	assert.Contains(t, failedColumns, "liters")
	assert.Contains(t, failedColumns, "unit_price")
	assert.Contains(t, failedColumns, "odometer_km")
}

func TestParseRowPlateNormalization(t *testing.T) {
	vehicles, drivers, stations, costCenters := importLookups()
	columns, _ := resolveColumns([]string{"placa", "data", "litros", "preco_unitario", "odometro"})

	svc := &ImportService{}
	record := []string{"abc-1d23", "15/01/2025", "40", "5,89", "45230"}

	row, rowErrors := svc.parseRow(2, record, columns, vehicles, drivers, stations, costCenters)
	assert.Empty(t, rowErrors)
	assert.NotNil(t, row)
}

func TestIsSamePurchase(t *testing.T) {
	existing := &models.FuelTransaction{TotalCost: decimal.RequireFromString("250.33")}

	near := decimal.RequireFromString("250.34")
	assert.True(t, isSamePurchase(existing, &models.FuelTransactionCreateRequest{TotalCost: &near}))

	far := decimal.RequireFromString("260.00")
	assert.False(t, isSamePurchase(existing, &models.FuelTransactionCreateRequest{TotalCost: &far}))

	// Without a supplied total the vehicle/date/liters match decides.
	assert.True(t, isSamePurchase(existing, &models.FuelTransactionCreateRequest{}))
}

func TestIsBlankRecord(t *testing.T) {
	assert.True(t, isBlankRecord([]string{"", "  ", ""}))
	assert.False(t, isBlankRecord([]string{"", "x", ""}))
}

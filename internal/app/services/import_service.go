package services

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"gorm.io/gorm"
)

// duplicateCostTolerance is how far apart two total_cost values may be
// while still treating the rows as the same purchase.
var duplicateCostTolerance = decimal.NewFromFloat(0.02)

// columnAliases maps normalized header cells to canonical column
// names. Portuguese headers lose their accented letters during
// normalization, hence forms like "ve_culo".
var columnAliases = map[string]string{
	"placa":           "plate",
	"plate":           "plate",
	"ve_culo":         "plate",
	"veiculo":         "plate",
	"vehicle":         "plate",
	"data":            "purchased_at",
	"date":            "purchased_at",
	"data_compra":     "purchased_at",
	"purchased_at":    "purchased_at",
	"litros":          "liters",
	"liters":          "liters",
	"qtd_litros":      "liters",
	"pre_o":           "unit_price",
	"preco":           "unit_price",
	"pre_o_unit_rio":  "unit_price",
	"preco_unitario":  "unit_price",
	"unit_price":      "unit_price",
	"valor_unit_rio":  "unit_price",
	"valor_total":     "total_cost",
	"total":           "total_cost",
	"total_cost":      "total_cost",
	"od_metro":        "odometer_km",
	"odometro":        "odometer_km",
	"odometer":        "odometer_km",
	"odometer_km":     "odometer_km",
	"km":              "odometer_km",
	"combust_vel":     "fuel_type",
	"combustivel":     "fuel_type",
	"fuel_type":       "fuel_type",
	"motorista":       "driver",
	"driver":          "driver",
	"posto":           "station",
	"station":         "station",
	"centro_de_custo": "cost_center",
	"centro_custo":    "cost_center",
	"cost_center":     "cost_center",
	"observa_es":      "notes",
	"observacoes":     "notes",
	"notes":           "notes",
}

var requiredColumns = []string{"plate", "purchased_at", "liters", "unit_price", "odometer_km"}

var fuelTypeAliases = map[string]models.FuelType{
	"GASOLINA": models.FuelTypeGasoline,
	"GASOLINE": models.FuelTypeGasoline,
	"ETANOL":   models.FuelTypeEthanol,
	"ETHANOL":  models.FuelTypeEthanol,
	"ALCOOL":   models.FuelTypeEthanol,
	"DIESEL":   models.FuelTypeDiesel,
}

type ImportService struct {
	db                 *gorm.DB
	transactionService *TransactionService
}

func NewImportService(db *gorm.DB, transactionService *TransactionService) *ImportService {
	return &ImportService{
		db:                 db,
		transactionService: transactionService,
	}
}

// parsedImportRow is one CSV line after validation, ready to become a
// create request.
type parsedImportRow struct {
	row     int
	vehicle *models.Vehicle
	request *models.FuelTransactionCreateRequest
}

// ImportTransactions reads a CSV of fuel purchases and creates one
// transaction per valid row. The run is all-or-nothing: any cell error
// in any row refuses the entire file, so operators fix the spreadsheet
// once instead of chasing partial imports. Exact duplicates of already
// stored transactions are skipped, not treated as errors.
func (s *ImportService) ImportTransactions(reader io.Reader) (*models.ImportResult, error) {
	buffered := bufio.NewReader(reader)
	headerSample, err := buffered.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, errors.NewBadRequestError("Failed to read CSV content")
	}
	if len(headerSample) == 0 {
		return nil, errors.NewBadRequestError("CSV file is empty")
	}

	firstLine := string(headerSample)
	if idx := strings.IndexAny(firstLine, "\r\n"); idx >= 0 {
		firstLine = firstLine[:idx]
	}

	csvReader := csv.NewReader(buffered)
	csvReader.Comma = pkg.DetectDelimiter(firstLine)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, errors.NewBadRequestError("Failed to read CSV header")
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	vehiclesByPlate, err := s.loadVehiclesByPlate()
	if err != nil {
		return nil, err
	}
	driversByName, err := s.loadDriversByName()
	if err != nil {
		return nil, err
	}
	stationsByName, err := s.loadStationsByName()
	if err != nil {
		return nil, err
	}
	costCentersByName, err := s.loadCostCentersByName()
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Imported: []models.ImportedRow{},
		Skipped:  []models.SkippedRow{},
		Errors:   []models.ImportRowError{},
	}

	var parsed []parsedImportRow
	rowNumber := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{
				Row:     rowNumber,
				Column:  "",
				Value:   "",
				Message: "Malformed CSV row",
			})
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		result.Summary.TotalRows++
		row, rowErrors := s.parseRow(rowNumber, record, columns, vehiclesByPlate, driversByName, stationsByName, costCentersByName)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		parsed = append(parsed, *row)
	}

	if len(result.Errors) > 0 {
		result.Summary.Errors = len(result.Errors)
		result.Success = false
		return result, nil
	}

	for _, row := range parsed {
		duplicate, err := s.transactionService.FindDuplicate(row.vehicle.ID, row.request.PurchasedAt, row.request.Liters)
		if err != nil {
			return nil, err
		}
		if duplicate != nil && isSamePurchase(duplicate, row.request) {
			result.Skipped = append(result.Skipped, models.SkippedRow{
				Row:    row.row,
				Reason: fmt.Sprintf("Duplicate of transaction %s", duplicate.ID),
			})
			continue
		}

		tx, err := s.transactionService.CreateTransaction(row.request)
		if err != nil {
			return nil, err
		}
		result.Imported = append(result.Imported, models.ImportedRow{
			Row:           row.row,
			TransactionID: tx.ID.String(),
			VehiclePlate:  row.vehicle.Plate,
			PurchasedAt:   tx.PurchasedAt.Format(time.RFC3339),
			Liters:        tx.Liters.String(),
			TotalCost:     tx.TotalCost.String(),
		})
	}

	result.Summary.Imported = len(result.Imported)
	result.Summary.Skipped = len(result.Skipped)
	result.Success = true
	return result, nil
}

// ImportTemplate returns a CSV header plus one example line in the
// accepted format.
func (s *ImportService) ImportTemplate() string {
	return "placa;data;litros;preco_unitario;valor_total;odometro;combustivel;motorista;posto;centro_de_custo;observacoes\n" +
		"ABC1D23;15/01/2025;42,500;5,89;250,33;45230;GASOLINA;;;;\n"
}

func resolveColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, cell := range header {
		if canonical, ok := columnAliases[pkg.NormalizeHeader(cell)]; ok {
			if _, exists := columns[canonical]; !exists {
				columns[canonical] = i
			}
		}
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewBadRequestError(fmt.Sprintf("CSV is missing required columns: %s", strings.Join(missing, ", ")))
	}
	return columns, nil
}

func (s *ImportService) parseRow(
	rowNumber int,
	record []string,
	columns map[string]int,
	vehiclesByPlate map[string]*models.Vehicle,
	driversByName map[string]*models.Driver,
	stationsByName map[string]*models.FuelStation,
	costCentersByName map[string]*models.CostCenter,
) (*parsedImportRow, []models.ImportRowError) {
	var rowErrors []models.ImportRowError
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	fail := func(column, value, message string) {
		rowErrors = append(rowErrors, models.ImportRowError{
			Row:     rowNumber,
			Column:  column,
			Value:   value,
			Message: message,
		})
	}

	plate := strings.ToUpper(strings.ReplaceAll(cell("plate"), "-", ""))
	vehicle := vehiclesByPlate[plate]
	if plate == "" {
		fail("plate", cell("plate"), "Plate is required")
	} else if vehicle == nil {
		fail("plate", cell("plate"), "No vehicle registered with this plate")
	} else if !vehicle.Active {
		fail("plate", cell("plate"), "Vehicle is inactive")
	}

	purchasedAt := pkg.ParseFlexibleTime(cell("purchased_at"))
	if purchasedAt == nil {
		fail("purchased_at", cell("purchased_at"), "Unrecognized date format")
	}

	liters := pkg.ParseFlexibleDecimal(cell("liters"))
	if liters == nil || !liters.IsPositive() {
		fail("liters", cell("liters"), "Liters must be a positive number")
	}

	unitPrice := pkg.ParseFlexibleDecimal(cell("unit_price"))
	if unitPrice == nil || !unitPrice.IsPositive() {
		fail("unit_price", cell("unit_price"), "Unit price must be a positive number")
	}

	odometerKm := pkg.ParseFlexibleInt(cell("odometer_km"))
	if odometerKm == nil || *odometerKm < 0 {
		fail("odometer_km", cell("odometer_km"), "Odometer must be a non-negative integer")
	}

	var fuelType models.FuelType
	if raw := cell("fuel_type"); raw != "" {
		mapped, ok := fuelTypeAliases[strings.ToUpper(raw)]
		if !ok {
			fail("fuel_type", raw, "Unknown fuel type")
		}
		fuelType = mapped
	}

	var driverID *string
	if name := cell("driver"); name != "" {
		driver := driversByName[strings.ToLower(name)]
		if driver == nil {
			fail("driver", name, "No driver registered with this name")
		} else {
			id := driver.ID.String()
			driverID = &id
		}
	}

	var stationID *string
	if name := cell("station"); name != "" {
		station := stationsByName[strings.ToLower(name)]
		if station == nil {
			fail("station", name, "No fuel station registered with this name")
		} else {
			id := station.ID.String()
			stationID = &id
		}
	}

	var costCenterID *string
	if name := cell("cost_center"); name != "" {
		costCenter := costCentersByName[strings.ToLower(name)]
		if costCenter == nil {
			fail("cost_center", name, "No cost center registered with this name")
		} else {
			id := costCenter.ID.String()
			costCenterID = &id
		}
	}

	if len(rowErrors) > 0 {
		return nil, rowErrors
	}

	request := &models.FuelTransactionCreateRequest{
		VehicleID:    vehicle.ID.String(),
		DriverID:     driverID,
		StationID:    stationID,
		CostCenterID: costCenterID,
		PurchasedAt:  *purchasedAt,
		Liters:       *liters,
		UnitPrice:    *unitPrice,
		TotalCost:    pkg.ParseFlexibleDecimal(cell("total_cost")),
		OdometerKm:   *odometerKm,
		FuelType:     fuelType,
		Notes:        cell("notes"),
	}
	return &parsedImportRow{row: rowNumber, vehicle: vehicle, request: request}, nil
}

func isSamePurchase(existing *models.FuelTransaction, req *models.FuelTransactionCreateRequest) bool {
	if req.TotalCost == nil {
		return true
	}
	return existing.TotalCost.Sub(*req.TotalCost).Abs().LessThanOrEqual(duplicateCostTolerance)
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (s *ImportService) loadCostCentersByName() (map[string]*models.CostCenter, error) {
	var costCenters []models.CostCenter
	if err := s.db.Find(&costCenters).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load cost centers")
	}
	byName := make(map[string]*models.CostCenter, len(costCenters))
	for i := range costCenters {
		byName[strings.ToLower(costCenters[i].Name)] = &costCenters[i]
	}
	return byName, nil
}

func (s *ImportService) loadVehiclesByPlate() (map[string]*models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Find(&vehicles).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load vehicles")
	}
	byPlate := make(map[string]*models.Vehicle, len(vehicles))
	for i := range vehicles {
		plate := strings.ToUpper(strings.ReplaceAll(vehicles[i].Plate, "-", ""))
		byPlate[plate] = &vehicles[i]
	}
	return byPlate, nil
}

func (s *ImportService) loadDriversByName() (map[string]*models.Driver, error) {
	var drivers []models.Driver
	if err := s.db.Find(&drivers).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load drivers")
	}
	byName := make(map[string]*models.Driver, len(drivers))
	for i := range drivers {
		byName[strings.ToLower(drivers[i].Name)] = &drivers[i]
	}
	return byName, nil
}

func (s *ImportService) loadStationsByName() (map[string]*models.FuelStation, error) {
	var stations []models.FuelStation
	if err := s.db.Find(&stations).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load fuel stations")
	}
	byName := make(map[string]*models.FuelStation, len(stations))
	for i := range stations {
		byName[strings.ToLower(stations[i].Name)] = &stations[i]
	}
	return byName, nil
}

package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"gorm.io/gorm"
)

// monthlyTrendMonths is the lookback window of the dashboard trend,
// independent of the from/to filter range.
const monthlyTrendMonths = 6

// topAlertsLimit bounds the dashboard's most-recent-unresolved list.
const topAlertsLimit = 5

type SummaryService struct {
	db           *gorm.DB
	priceService *PriceService
	alertService *AlertService
}

func NewSummaryService(db *gorm.DB, priceService *PriceService, alertService *AlertService) *SummaryService {
	return &SummaryService{
		db:           db,
		priceService: priceService,
		alertService: alertService,
	}
}

// GetDashboardSummary aggregates period totals, per-vehicle metrics,
// the monthly trend, the national price reference delta and open
// alerts. Reads are pure and recomputed from current rows on every
// call.
func (s *SummaryService) GetDashboardSummary(filter *models.SummaryFilter) (*models.DashboardSummary, error) {
	transactions, err := s.loadPeriodTransactions(filter)
	if err != nil {
		return nil, err
	}

	totals := summarizeTotals(transactions)
	costByVehicle := summarizeByVehicle(transactions)

	references, err := s.priceService.NationalReferenceByFuelType(distinctFuelTypes(transactions))
	if err != nil {
		return nil, err
	}
	priceReference := summarizePriceReference(transactions, references)

	monthlyTrend, err := s.monthlyTrend()
	if err != nil {
		return nil, err
	}

	alertsSummary, err := s.alertService.OpenAlertsSummary(filter.IncludePersonal, topAlertsLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		Period: models.SummaryPeriod{
			From:            filter.From.Format("2006-01-02"),
			To:              filter.To.Format("2006-01-02"),
			IncludePersonal: filter.IncludePersonal,
		},
		Summary:        totals,
		PriceReference: priceReference,
		CostByVehicle:  costByVehicle,
		MonthlyTrend:   monthlyTrend,
		Alerts:         *alertsSummary,
	}, nil
}

func (s *SummaryService) loadPeriodTransactions(filter *models.SummaryFilter) ([]models.FuelTransaction, error) {
	query := s.db.
		Preload("Vehicle").
		Joins("JOIN vehicles ON vehicles.id = fuel_transactions.vehicle_id").
		Where("fuel_transactions.purchased_at >= ?", filter.From).
		Where("fuel_transactions.purchased_at < ?", filter.To.AddDate(0, 0, 1))

	if !filter.IncludePersonal {
		query = query.Where("vehicles.usage_category <> ?", models.UsageCategoryPersonal)
	}
	if filter.VehicleID != nil {
		query = query.Where("fuel_transactions.vehicle_id = ?", *filter.VehicleID)
	}
	if filter.CostCenterID != nil {
		query = query.Where("fuel_transactions.cost_center_id = ?", *filter.CostCenterID)
	}

	var transactions []models.FuelTransaction
	if err := query.Order("fuel_transactions.purchased_at asc").Find(&transactions).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load period transactions")
	}
	return transactions, nil
}

func (s *SummaryService) monthlyTrend() ([]models.MonthlyTrendEntry, error) {
	now := time.Now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -(monthlyTrendMonths - 1), 0)

	var transactions []models.FuelTransaction
	err := s.db.
		Joins("JOIN vehicles ON vehicles.id = fuel_transactions.vehicle_id").
		Where("vehicles.usage_category <> ?", models.UsageCategoryPersonal).
		Where("fuel_transactions.purchased_at >= ?", windowStart).
		Find(&transactions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load trend transactions")
	}

	return bucketByMonth(transactions), nil
}

// summarizeTotals adds up the period totals with decimal precision.
func summarizeTotals(transactions []models.FuelTransaction) models.SummaryTotals {
	totals := models.SummaryTotals{
		TotalCost:   decimal.Zero,
		TotalLiters: decimal.Zero,
	}
	for _, tx := range transactions {
		totals.TotalCost = totals.TotalCost.Add(tx.TotalCost)
		totals.TotalLiters = totals.TotalLiters.Add(tx.Liters)
		totals.TransactionCount++
	}
	return totals
}

// summarizeByVehicle groups period transactions per vehicle and
// derives km/L and cost/km. Both stay nil with fewer than two
// transactions or when the odometer did not advance. Input must be
// ordered by purchased_at ascending.
func summarizeByVehicle(transactions []models.FuelTransaction) []models.VehicleCostSummary {
	grouped := make(map[string][]models.FuelTransaction)
	var order []string
	for _, tx := range transactions {
		key := tx.VehicleID.String()
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], tx)
	}

	summaries := make([]models.VehicleCostSummary, 0, len(order))
	for _, key := range order {
		vehicleTxs := grouped[key]
		entry := models.VehicleCostSummary{
			VehicleID:    vehicleTxs[0].VehicleID,
			VehicleName:  vehicleTxs[0].Vehicle.Name,
			VehiclePlate: vehicleTxs[0].Vehicle.Plate,
			TotalCost:    decimal.Zero,
			TotalLiters:  decimal.Zero,
		}
		for _, tx := range vehicleTxs {
			entry.TotalCost = entry.TotalCost.Add(tx.TotalCost)
			entry.TotalLiters = entry.TotalLiters.Add(tx.Liters)
			entry.TransactionCount++
		}
		entry.KmPerLiter, entry.CostPerKm = vehicleConsumption(vehicleTxs, entry.TotalCost, entry.TotalLiters)
		summaries = append(summaries, entry)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalCost.GreaterThan(summaries[j].TotalCost)
	})
	return summaries
}

// vehicleConsumption computes km/L and cost/km over a vehicle's
// period transactions (ordered by purchased_at ascending).
func vehicleConsumption(vehicleTxs []models.FuelTransaction, totalCost, totalLiters decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if len(vehicleTxs) < 2 {
		return nil, nil
	}

	first := vehicleTxs[0]
	last := vehicleTxs[len(vehicleTxs)-1]
	kmTraveled := last.OdometerKm - first.OdometerKm
	if kmTraveled <= 0 || !totalLiters.IsPositive() {
		return nil, nil
	}

	km := decimal.NewFromInt(kmTraveled)
	kmPerLiter := km.Div(totalLiters).Round(2)
	costPerKm := totalCost.Div(km).Round(2)
	return &kmPerLiter, &costPerKm
}

// summarizePriceReference compares actual spend against the national
// average for every fuel type with a known reference price. Without
// any coverage all reference fields stay nil and the ratio is zero.
func summarizePriceReference(transactions []models.FuelTransaction, references map[models.FuelType]decimal.Decimal) models.PriceReference {
	coverageLiters := decimal.Zero
	expectedCost := decimal.Zero
	actualCost := decimal.Zero
	totalLiters := decimal.Zero

	for _, tx := range transactions {
		totalLiters = totalLiters.Add(tx.Liters)
		referencePrice, ok := references[tx.FuelType]
		if !ok {
			continue
		}
		coverageLiters = coverageLiters.Add(tx.Liters)
		expectedCost = expectedCost.Add(tx.Liters.Mul(referencePrice))
		actualCost = actualCost.Add(tx.TotalCost)
	}

	reference := models.PriceReference{
		CoverageLiters: coverageLiters,
		CoverageRatio:  decimal.Zero,
	}
	if !coverageLiters.IsPositive() {
		return reference
	}

	expectedCost = expectedCost.Round(2)
	nationalAvg := expectedCost.Div(coverageLiters).Round(4)
	delta := actualCost.Sub(expectedCost)

	reference.NationalAvgPrice = &nationalAvg
	reference.ExpectedCost = &expectedCost
	reference.ActualCost = &actualCost
	reference.Delta = &delta
	if expectedCost.IsPositive() {
		deltaPercent := delta.Div(expectedCost).Mul(decimal.NewFromInt(100)).Round(2)
		reference.DeltaPercent = &deltaPercent
	}
	if totalLiters.IsPositive() {
		reference.CoverageRatio = coverageLiters.Div(totalLiters).Round(4)
	}
	return reference
}

// bucketByMonth groups cost and liters by calendar month, ordered
// chronologically.
func bucketByMonth(transactions []models.FuelTransaction) []models.MonthlyTrendEntry {
	buckets := make(map[string]*models.MonthlyTrendEntry)
	for _, tx := range transactions {
		month := tx.PurchasedAt.Format("2006-01")
		entry, ok := buckets[month]
		if !ok {
			entry = &models.MonthlyTrendEntry{
				Month:       month,
				TotalCost:   decimal.Zero,
				TotalLiters: decimal.Zero,
			}
			buckets[month] = entry
		}
		entry.TotalCost = entry.TotalCost.Add(tx.TotalCost)
		entry.TotalLiters = entry.TotalLiters.Add(tx.Liters)
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	trend := make([]models.MonthlyTrendEntry, 0, len(months))
	for _, month := range months {
		trend = append(trend, *buckets[month])
	}
	return trend
}

func distinctFuelTypes(transactions []models.FuelTransaction) []models.FuelType {
	seen := make(map[models.FuelType]bool)
	var fuelTypes []models.FuelType
	for _, tx := range transactions {
		if !seen[tx.FuelType] {
			seen[tx.FuelType] = true
			fuelTypes = append(fuelTypes, tx.FuelType)
		}
	}
	return fuelTypes
}

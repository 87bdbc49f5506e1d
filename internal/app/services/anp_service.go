package services

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/errors"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/app/pkg"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
	"github.com/xuri/excelize/v2"
)

// anpProductNames maps product labels found in the ANP weekly survey
// workbook to internal fuel types.
var anpProductNames = map[string]models.FuelType{
	"GASOLINA COMUM":   models.FuelTypeGasoline,
	"GASOLINA":         models.FuelTypeGasoline,
	"ETANOL HIDRATADO": models.FuelTypeEthanol,
	"ETANOL":           models.FuelTypeEthanol,
	"OLEO DIESEL S10":  models.FuelTypeDiesel,
	"OLEO DIESEL":      models.FuelTypeDiesel,
	"ÓLEO DIESEL":      models.FuelTypeDiesel,
	"DIESEL S10":       models.FuelTypeDiesel,
}

type AnpService struct {
	baseURL      string
	priceService *PriceService
	httpClient   *http.Client
}

func NewAnpService(priceService *PriceService) *AnpService {
	baseURL := ""
	if infrastructures.Config != nil {
		baseURL = infrastructures.Config.ANP_BASE_URL
	}
	return &AnpService{
		baseURL:      baseURL,
		priceService: priceService,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchLatestPrices downloads the most recent ANP weekly fuel price
// survey and stores national reference snapshots. The current survey
// week is tried first; when it is not published yet the previous week
// is used.
func (s *AnpService) FetchLatestPrices() (map[models.FuelType]decimal.Decimal, error) {
	now := time.Now()
	weekStart, weekEnd := surveyWeek(now)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		url := s.surveyURL(weekStart, weekEnd)
		prices, err := s.fetchSurvey(url)
		if err == nil {
			if err := s.priceService.SaveExternalPrices(prices, weekEnd); err != nil {
				return nil, err
			}
			logrus.WithFields(logrus.Fields{
				"week_start": weekStart.Format("2006-01-02"),
				"week_end":   weekEnd.Format("2006-01-02"),
				"fuel_types": len(prices),
			}).Info("National fuel prices updated from ANP survey")
			return prices, nil
		}
		lastErr = err
		weekStart = weekStart.AddDate(0, 0, -7)
		weekEnd = weekEnd.AddDate(0, 0, -7)
	}
	return nil, errors.NewInternalServerError(lastErr, "Failed to fetch ANP fuel price survey")
}

func (s *AnpService) fetchSurvey(url string) (map[models.FuelType]decimal.Decimal, error) {
	resp, err := s.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anp survey returned status %d for %s", resp.StatusCode, url)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return parseAnpWorkbook(&buf)
}

// surveyURL builds the weekly survey workbook address. ANP publishes
// one file per survey week named by its Sunday and Saturday dates.
func (s *AnpService) surveyURL(weekStart, weekEnd time.Time) string {
	fileName := fmt.Sprintf("resumo_semanal_lpc_%s_%s.xlsx",
		weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02"))
	return strings.TrimRight(s.baseURL, "/") + "/" + fileName
}

// surveyWeek returns the Sunday-to-Saturday survey window containing
// the reference time.
func surveyWeek(ref time.Time) (time.Time, time.Time) {
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	weekStart := ref.AddDate(0, 0, -int(ref.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}

// parseAnpWorkbook extracts national average prices per product from
// the survey spreadsheet. The workbook layout moves around between
// releases, so the product and average price columns are located by
// scanning every sheet for their header cells.
func parseAnpWorkbook(r *bytes.Buffer) (map[models.FuelType]decimal.Decimal, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open anp workbook: %w", err)
	}
	defer workbook.Close()

	prices := map[models.FuelType]decimal.Decimal{}
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			continue
		}
		productCol, priceCol := locatePriceColumns(rows)
		if productCol < 0 || priceCol < 0 {
			continue
		}

		for _, row := range rows {
			if productCol >= len(row) || priceCol >= len(row) {
				continue
			}
			fuelType, ok := matchAnpProduct(row[productCol])
			if !ok {
				continue
			}
			price := pkg.ParseFlexibleDecimal(row[priceCol])
			if price == nil || !price.IsPositive() {
				continue
			}
			if _, exists := prices[fuelType]; !exists {
				prices[fuelType] = *price
			}
		}
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("no recognized fuel prices in anp workbook")
	}
	return prices, nil
}

// locatePriceColumns finds the indexes of the product name column and
// the average resale price column in a sheet's header row.
func locatePriceColumns(rows [][]string) (int, int) {
	for _, row := range rows {
		productCol, priceCol := -1, -1
		for i, cell := range row {
			normalized := strings.ToUpper(strings.TrimSpace(cell))
			switch {
			case normalized == "PRODUTO" || normalized == "PRODUTOS":
				productCol = i
			case strings.Contains(normalized, "PREÇO MÉDIO") && strings.Contains(normalized, "REVENDA"):
				priceCol = i
			case priceCol < 0 && (strings.Contains(normalized, "PREÇO MÉDIO") || strings.Contains(normalized, "MÉDIA")):
				priceCol = i
			}
		}
		if productCol >= 0 && priceCol >= 0 {
			return productCol, priceCol
		}
	}
	return -1, -1
}

func matchAnpProduct(cell string) (models.FuelType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(cell))
	if fuelType, ok := anpProductNames[normalized]; ok {
		return fuelType, true
	}
	for name, fuelType := range anpProductNames {
		if strings.HasPrefix(normalized, name) {
			return fuelType, true
		}
	}
	return "", false
}

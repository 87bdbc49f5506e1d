package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/xuri/excelize/v2"
)

func TestSurveyWeek(t *testing.T) {
	// Wednesday 2025-01-15 falls in the survey week of Sunday
	// 2025-01-12 through Saturday 2025-01-18.
	ref := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	start, end := surveyWeek(ref)
	assert.Equal(t, "2025-01-12", start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-18", end.Format("2006-01-02"))
}

func TestSurveyWeekOnSunday(t *testing.T) {
	ref := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)

	start, end := surveyWeek(ref)
	assert.Equal(t, "2025-01-12", start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-18", end.Format("2006-01-02"))
}

func TestSurveyURL(t *testing.T) {
	svc := &AnpService{baseURL: "https://example.org/arquivos-lpc/"}
	start := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)

	url := svc.surveyURL(start, end)
	assert.Equal(t, "https://example.org/arquivos-lpc/resumo_semanal_lpc_2025-01-12_2025-01-18.xlsx", url)
}

func TestMatchAnpProduct(t *testing.T) {
	cases := map[string]models.FuelType{
		"GASOLINA COMUM":   models.FuelTypeGasoline,
		"gasolina comum":   models.FuelTypeGasoline,
		"ETANOL HIDRATADO": models.FuelTypeEthanol,
		"ÓLEO DIESEL S10":  models.FuelTypeDiesel,
		"OLEO DIESEL S10":  models.FuelTypeDiesel,
	}
	for input, expected := range cases {
		fuelType, ok := matchAnpProduct(input)
		assert.True(t, ok, "input %q", input)
		assert.Equal(t, expected, fuelType, "input %q", input)
	}

	_, ok := matchAnpProduct("GLP")
	assert.False(t, ok)
	_, ok = matchAnpProduct("")
	assert.False(t, ok)
}

func TestParseAnpWorkbook(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)

	assert.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]any{"PRODUTO", "PREÇO MÉDIO REVENDA"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]any{"GASOLINA COMUM", "6,09"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A3", &[]any{"ETANOL HIDRATADO", "4,39"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A4", &[]any{"ÓLEO DIESEL S10", "6,19"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A5", &[]any{"GLP", "105,00"}))

	buf, err := workbook.WriteToBuffer()
	assert.NoError(t, err)

	prices, err := parseAnpWorkbook(buf)
	assert.NoError(t, err)
	assert.Len(t, prices, 3)
	assert.Equal(t, "6.09", prices[models.FuelTypeGasoline].String())
	assert.Equal(t, "4.39", prices[models.FuelTypeEthanol].String())
	assert.Equal(t, "6.19", prices[models.FuelTypeDiesel].String())
}

func TestParseAnpWorkbookFirstMatchWins(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)

	assert.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]any{"PRODUTO", "PREÇO MÉDIO REVENDA"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]any{"GASOLINA COMUM", "6,09"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A3", &[]any{"GASOLINA ADITIVADA", "6,29"}))

	buf, err := workbook.WriteToBuffer()
	assert.NoError(t, err)

	prices, err := parseAnpWorkbook(buf)
	assert.NoError(t, err)
	assert.Equal(t, "6.09", prices[models.FuelTypeGasoline].String())
}

func TestParseAnpWorkbookNoRecognizedPrices(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)

	assert.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]any{"UF", "MUNICÍPIO"}))

	buf, err := workbook.WriteToBuffer()
	assert.NoError(t, err)

	_, err = parseAnpWorkbook(buf)
	assert.Error(t, err)
}

func TestLocatePriceColumnsFallbackHeader(t *testing.T) {
	rows := [][]string{
		{"Resumo Semanal"},
		{"PRODUTOS", "UNIDADE", "MÉDIA PONDERADA"},
	}

	productCol, priceCol := locatePriceColumns(rows)
	assert.Equal(t, 0, productCol)
	assert.Equal(t, 2, priceCol)
}

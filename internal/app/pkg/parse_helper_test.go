package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDecimalBrazilianFormat(t *testing.T) {
	cases := map[string]string{
		"1234,56":   "1234.56",
		"1.234,56":  "1234.56",
		"42,500":    "42.5",
		"5,89":      "5.89",
		"R$ 250,33": "250.33",
	}
	for input, expected := range cases {
		parsed := ParseFlexibleDecimal(input)
		assert.NotNil(t, parsed, "input %q", input)
		assert.Equal(t, expected, parsed.String(), "input %q", input)
	}
}

func TestParseFlexibleDecimalInternationalFormat(t *testing.T) {
	cases := map[string]string{
		"1234.56":  "1234.56",
		"1,234.56": "1234.56",
		"42.5":     "42.5",
	}
	for input, expected := range cases {
		parsed := ParseFlexibleDecimal(input)
		assert.NotNil(t, parsed, "input %q", input)
		assert.Equal(t, expected, parsed.String(), "input %q", input)
	}
}

func TestParseFlexibleDecimalInvalid(t *testing.T) {
	assert.Nil(t, ParseFlexibleDecimal(""))
	assert.Nil(t, ParseFlexibleDecimal("   "))
	assert.Nil(t, ParseFlexibleDecimal("abc"))
}

func TestParseFlexibleTimeBrazilianDate(t *testing.T) {
	parsed := ParseFlexibleTime("15/01/2025")
	assert.NotNil(t, parsed)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, 1, int(parsed.Month()))
	assert.Equal(t, 15, parsed.Day())
}

func TestParseFlexibleTimeWithClock(t *testing.T) {
	parsed := ParseFlexibleTime("15/01/2025 14:30")
	assert.NotNil(t, parsed)
	assert.Equal(t, 14, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
}

func TestParseFlexibleTimeISO(t *testing.T) {
	parsed := ParseFlexibleTime("2025-01-15")
	assert.NotNil(t, parsed)
	assert.Equal(t, 15, parsed.Day())

	parsed = ParseFlexibleTime("2025-01-15T14:30:00Z")
	assert.NotNil(t, parsed)
	assert.Equal(t, 14, parsed.Hour())
}

func TestParseFlexibleTimeInvalid(t *testing.T) {
	assert.Nil(t, ParseFlexibleTime(""))
	assert.Nil(t, ParseFlexibleTime("not a date"))
	assert.Nil(t, ParseFlexibleTime("40/40/2025"))
}

func TestParseFlexibleInt(t *testing.T) {
	parsed := ParseFlexibleInt("45230")
	assert.NotNil(t, parsed)
	assert.Equal(t, int64(45230), *parsed)

	parsed = ParseFlexibleInt("45.230")
	assert.NotNil(t, parsed)
	assert.Equal(t, int64(45230), *parsed)

	assert.Nil(t, ParseFlexibleInt(""))
	assert.Nil(t, ParseFlexibleInt("abc"))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("placa;data;litros"))
	assert.Equal(t, ',', DetectDelimiter("plate,date,liters"))
	assert.Equal(t, '\t', DetectDelimiter("plate\tdate\tliters"))
	// Empty sample falls back to the semicolon default.
	assert.Equal(t, ';', DetectDelimiter("placa"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "placa", NormalizeHeader("  Placa  "))
	assert.Equal(t, "valor_total", NormalizeHeader("Valor Total"))
	assert.Equal(t, "pre_o_unit_rio", NormalizeHeader("Preço Unitário"))
	assert.Equal(t, "odometer_km", NormalizeHeader("Odometer (km)"))
}

package pkg

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var currencyChars = regexp.MustCompile(`[R$\s]`)

// ParseFlexibleDecimal parses a decimal in Brazilian or international
// format: "1234,56", "1.234,56", "1234.56" and "1,234.56" all resolve
// to the same value. Returns nil when the value is empty or malformed.
func ParseFlexibleDecimal(value string) *decimal.Decimal {
	value = currencyChars.ReplaceAllString(strings.TrimSpace(value), "")
	if value == "" {
		return nil
	}

	hasComma := strings.Contains(value, ",")
	hasDot := strings.Contains(value, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(value, ",") > strings.LastIndex(value, ".") {
			// Brazilian: 1.234,56
			value = strings.ReplaceAll(value, ".", "")
			value = strings.ReplaceAll(value, ",", ".")
		} else {
			// International: 1,234.56
			value = strings.ReplaceAll(value, ",", "")
		}
	case hasComma:
		parts := strings.Split(value, ",")
		if len(parts) == 2 && len(parts[1]) <= 3 {
			// Decimal comma; three places is common for liters.
			value = strings.ReplaceAll(value, ",", ".")
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &d
}

var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseFlexibleTime parses Brazilian (DD/MM/YYYY) and ISO date or
// datetime strings. Returns nil when no layout matches.
func ParseFlexibleTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

var integerNoise = regexp.MustCompile(`[.\s]`)

// ParseFlexibleInt parses an integer, tolerating dots and spaces used
// as thousands separators.
func ParseFlexibleInt(value string) *int64 {
	value = integerNoise.ReplaceAllString(strings.TrimSpace(value), "")
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// DetectDelimiter picks the most frequent of the usual CSV delimiters
// in a header sample, defaulting to semicolon (the common Brazilian
// export format).
func DetectDelimiter(sample string) rune {
	delimiters := []rune{';', ',', '\t', '|'}
	best := ';'
	bestCount := 0
	for _, d := range delimiters {
		if count := strings.Count(sample, string(d)); count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best
}

var headerNoise = regexp.MustCompile(`[^a-z0-9_]`)
var headerUnderscores = regexp.MustCompile(`_+`)

// NormalizeHeader lowercases a CSV header cell and collapses anything
// that is not alphanumeric into single underscores.
func NormalizeHeader(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = headerNoise.ReplaceAllString(normalized, "_")
	normalized = headerUnderscores.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "_")
}

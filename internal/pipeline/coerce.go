package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// parseNumeric attempts a deterministic numeric coercion of a raw cell.
// Handles accounting parentheses for negatives, currency symbols and
// thousands separators the way spreadsheet exports write them.
func parseNumeric(raw string) (float64, bool) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return 0, false
	}

	// Handle parentheses for negative numbers: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimPrefix(cleanVal, "(")
		cleanVal = strings.TrimSuffix(cleanVal, ")")
		isNegative = true
	}

	// Remove currency markers common in salary exports
	currencySymbols := []string{"$", "S$", "SGD", "USD"}
	for _, symbol := range currencySymbols {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}

	// Remove thousands separators
	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.TrimSpace(cleanVal)

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	if isNegative {
		val = -val
	}
	return val, true
}

// parseCount parses an optional engagement counter (views, applications).
// Unparseable or negative values collapse to zero rather than dropping
// the row.
func parseCount(raw string) int {
	val, ok := parseNumeric(raw)
	if !ok || val < 0 {
		return 0
	}
	return int(val)
}

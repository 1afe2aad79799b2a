package greenops

import (
	"math"
	"strconv"
	"strings"
)

// Calculate returns the kg CO2 for magnitude units of a category/type pair,
// rounded to two decimal places.
//
// Unknown categories or types contribute zero instead of failing, so data
// entry is never blocked while a selection is incomplete.
//
// Example:
//
//	Calculate(CategoryTransport, "car", 100) // 21.00
func Calculate(category Category, activityType string, magnitude float64) float64 {
	factor, _ := Factor(category, activityType)
	return Round2(magnitude * factor)
}

// CalculateRaw resolves the category default for a missing magnitude and
// then calls Calculate.
func CalculateRaw(category Category, activityType string, raw *float64) float64 {
	return Calculate(category, activityType, ResolveMagnitude(category, raw))
}

// DefaultMagnitude is the magnitude assumed when none was given: one unit for
// countable categories, zero for distance and duration.
func DefaultMagnitude(category Category) float64 {
	switch category {
	case CategoryMeals, CategoryShopping:
		return 1
	default:
		return 0
	}
}

// ResolveMagnitude returns raw when it is a usable positive number and the
// category default otherwise. Zero, negative, NaN and infinite values are
// treated as absent.
func ResolveMagnitude(category Category, raw *float64) float64 {
	if raw == nil {
		return DefaultMagnitude(category)
	}
	v := *raw
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return DefaultMagnitude(category)
	}
	return v
}

// ParseMagnitude parses the leading number of s ("50km" -> 50).
// It returns nil when s has no leading number.
func ParseMagnitude(s string) *float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
scan:
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			end = i + 1
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && i == 0:
		default:
			break scan
		}
	}
	if end == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return nil
	}
	return &v
}

// Round2 rounds to the hundredths digit, half away from zero.
func Round2(v float64) float64 {
	return roundTo(v, 2)
}

// Round1 rounds to the tenths digit, half away from zero.
func Round1(v float64) float64 {
	return roundTo(v, 1)
}

func roundTo(v float64, precision int) float64 {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	return math.Round(v*multiplier) / multiplier
}

package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	rounded := roundTo(f, precision)
	if precision <= 0 {
		return FormatNumber(int64(rounded))
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), rounded)
}

// FormatKg formats a carbon quantity as "1,234.50 kg".
func FormatKg(kg float64) string {
	return FormatFloat(kg, 2) + " kg"
}

// FormatPercent formats a signed percentage with one decimal ("+12.5%").
func FormatPercent(p float64) string {
	sign := ""
	if p > 0 {
		sign = "+"
	}
	return sign + FormatFloat(p, 1) + "%"
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values at or above LargeNumberThreshold use "~X.X million" format and values
// at or above BillionThreshold use "~X.X billion"; smaller values fall back to
// the comma-separated integer format.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}

	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}

	return FormatNumber(int64(math.Round(n)))
}

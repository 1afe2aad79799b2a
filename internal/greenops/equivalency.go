package greenops

import (
	"fmt"
	"math"
	"sort"
)

// Equivalencies expresses kg CO2 as miles driven, smartphones charged and
// tree-years of absorption.
//
// Returns an empty output when kg is below MinEquivalencyThresholdKg, since
// the equivalencies become meaninglessly small.
func Equivalencies(kg float64) EquivalencyOutput {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	trees := kg / TreeAbsorptionKgPerYear

	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	return EquivalencyOutput{
		InputKg: kg,
		Results: []EquivalencyResult{
			{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: milesFormatted, Label: "miles driven"},
			{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: phonesFormatted, Label: "smartphones charged"},
			{Type: EquivalencyTreesYear, Value: trees, FormattedValue: FormatFloat(trees, 1), Label: "tree-years to absorb"},
		},
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			milesFormatted, phonesFormatted),
	}
}

// TreesToOffset returns the whole number of trees needed to absorb yearlyKg
// in one year. Non-positive input needs no trees.
func TreesToOffset(yearlyKg float64) int {
	if yearlyKg <= 0 || math.IsNaN(yearlyKg) {
		return 0
	}
	return int(math.Ceil(yearlyKg / TreeAbsorptionKgPerYear))
}

// PercentVs returns the percentage deviation of value from reference,
// rounded to a whole percent. A non-positive reference yields 0.
func PercentVs(value, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return math.Round((value - reference) / reference * 100)
}

// CountryComparison is the user's daily average against one reference country.
type CountryComparison struct {
	Country      string  `json:"country"`
	DailyKg      float64 `json:"daily_kg"`
	DeltaPct     float64 `json:"delta_percent"`
	BelowOrEqual bool    `json:"below_or_equal"`
}

// CompareCountries compares avgDailyKg with each entry of CountryDailyKg,
// ordered from highest to lowest reference emissions.
func CompareCountries(avgDailyKg float64) []CountryComparison {
	out := make([]CountryComparison, 0, len(CountryDailyKg))
	for country, ref := range CountryDailyKg {
		out = append(out, CountryComparison{
			Country:      country,
			DailyKg:      ref,
			DeltaPct:     PercentVs(avgDailyKg, ref),
			BelowOrEqual: avgDailyKg <= ref,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DailyKg != out[j].DailyKg {
			return out[i].DailyKg > out[j].DailyKg
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// formatEquivalencyValue uses large number scaling for million/billion
// values and a comma-separated integer otherwise.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}

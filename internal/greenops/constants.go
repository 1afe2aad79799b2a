package greenops

// Reference constants used by projections and comparisons.
const (
	// TreeAbsorptionKgPerYear is the kg CO2 one mature tree absorbs per year.
	// Used to express yearly emissions as "trees needed to offset".
	TreeAbsorptionKgPerYear = 21.0

	// GlobalAverageDailyKg is the global per-capita daily emission in kg CO2.
	GlobalAverageDailyKg = 4.5

	// AveragePersonDailyKg is the figure quoted to users as "average daily emissions".
	AveragePersonDailyKg = 11.0

	// AveragePersonYearlyKg is the yearly counterpart of AveragePersonDailyKg.
	AveragePersonYearlyKg = 4000.0

	// DaysPerMonth and DaysPerYear are the projection horizons.
	DaysPerMonth = 30
	DaysPerYear  = 365
)

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822
)

// Unit conversion constants used by the text parser and the calculator.
const (
	// KmPerMile converts miles to kilometres.
	KmPerMile = 1.609344

	// MinutesPerHour converts minutes to hours.
	MinutesPerHour = 60.0
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold is the threshold for using abbreviated display.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)

// CountryDailyKg holds per-capita daily emissions (kg CO2) for comparison.
//
//nolint:gochecknoglobals // Read-only reference table.
var CountryDailyKg = map[string]float64{
	"usa":    16,
	"uk":     8,
	"india":  1.9,
	"global": GlobalAverageDailyKg,
}

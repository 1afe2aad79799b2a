package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalencies(t *testing.T) {
	tests := []struct {
		name        string
		kg          float64
		wantMiles   float64
		wantPhones  float64
		wantIsEmpty bool
	}{
		{name: "150kg reference value", kg: 150, wantMiles: 781.25, wantPhones: 18248.18},
		{name: "exactly at threshold", kg: 1, wantMiles: 5.208333, wantPhones: 121.65},
		{name: "below threshold returns empty", kg: 0.5, wantIsEmpty: true},
		{name: "zero returns empty", kg: 0, wantIsEmpty: true},
		{name: "negative returns empty", kg: -10, wantIsEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Equivalencies(tt.kg)
			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty)
				assert.Empty(t, got.Results)
				return
			}

			require.False(t, got.IsEmpty)
			require.Len(t, got.Results, 3)
			assert.Equal(t, EquivalencyMilesDriven, got.Results[0].Type)
			assert.InDelta(t, tt.wantMiles, got.Results[0].Value, tt.wantMiles*0.01)
			assert.Equal(t, EquivalencySmartphonesCharged, got.Results[1].Type)
			assert.InDelta(t, tt.wantPhones, got.Results[1].Value, tt.wantPhones*0.01)
			assert.Equal(t, EquivalencyTreesYear, got.Results[2].Type)
			assert.Contains(t, got.DisplayText, "Equivalent to")
		})
	}
}

func TestEquivalencies_DisplayText(t *testing.T) {
	got := Equivalencies(150)
	assert.Contains(t, got.DisplayText, "18,248")
	assert.Contains(t, got.DisplayText, "781")

	large := Equivalencies(10_000_000)
	assert.Contains(t, large.DisplayText, "million")
}

func TestTreesToOffset(t *testing.T) {
	assert.Equal(t, 0, TreesToOffset(0))
	assert.Equal(t, 1, TreesToOffset(1))
	assert.Equal(t, 1, TreesToOffset(21))
	assert.Equal(t, 2, TreesToOffset(21.1))
	assert.Equal(t, 79, TreesToOffset(1642.5))
}

func TestPercentVs(t *testing.T) {
	assert.InDelta(t, 100.0, PercentVs(9, GlobalAverageDailyKg), 1e-9)
	assert.InDelta(t, -56.0, PercentVs(2, GlobalAverageDailyKg), 1e-9)
	assert.InDelta(t, 0.0, PercentVs(5, 0), 1e-9)
}

func TestCompareCountries(t *testing.T) {
	got := CompareCountries(8)
	require.Len(t, got, len(CountryDailyKg))
	assert.Equal(t, "usa", got[0].Country, "highest reference first")
	assert.Equal(t, "india", got[len(got)-1].Country)

	for _, c := range got {
		if c.Country == "uk" {
			assert.True(t, c.BelowOrEqual)
			assert.InDelta(t, 0.0, c.DeltaPct, 1e-9)
		}
	}
}

package nlparse

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Drove 50km!", "drove 50 km"},
		{"  ate   BEEF, for lunch. ", "ate beef for lunch"},
		{"biked 2.5mi", "biked 2.5 mi"},
		{"heater... 30mins", "heater 30 mins"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

type want struct {
	rule      string
	category  greenops.Category
	typ       string
	magnitude float64
}

func assertCandidates(t *testing.T, got []Candidate, expected ...want) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i, w := range expected {
		assert.Equal(t, w.rule, got[i].Rule, "candidate %d rule", i)
		assert.Equal(t, w.category, got[i].Category, "candidate %d category", i)
		assert.Equal(t, w.typ, got[i].Type, "candidate %d type", i)
		require.NotNil(t, got[i].Magnitude)
		assert.InDelta(t, w.magnitude, *got[i].Magnitude, 1e-9, "candidate %d magnitude", i)
	}
}

func TestParse_MultipleActivities(t *testing.T) {
	got := Parse("drove 50km and ate beef for lunch")
	assertCandidates(t, got,
		want{RuleTransportDrive, greenops.CategoryTransport, "car", 50},
		want{RuleMeals, greenops.CategoryMeals, "beef", 1},
	)
	assert.Equal(t, "drove 50 km", got[0].Match)
	assert.InDelta(t, 10.5, got[0].CarbonKg(), 1e-9)
}

func TestParse_Rules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []want
	}{
		{"drive in miles", "Commuted 10 miles today", []want{
			{RuleTransportDrive, greenops.CategoryTransport, "car", 16.09},
		}},
		{"mode with filler words", "took the bus for 12 km", []want{
			{RuleTransportMode, greenops.CategoryTransport, "bus", 12},
		}},
		{"cycled maps to bike", "cycled 8.5 km to work", []want{
			{RuleTransportMode, greenops.CategoryTransport, "bike", 8.5},
		}},
		{"mode overlapping drive is skipped", "drove my motorcycle 30 km", []want{
			{RuleTransportDrive, greenops.CategoryTransport, "car", 30},
		}},
		{"mode after drive span is kept", "drove 5 km then train 20 km", []want{
			{RuleTransportDrive, greenops.CategoryTransport, "car", 5},
			{RuleTransportMode, greenops.CategoryTransport, "train", 20},
		}},
		{"meal with leading count", "had 2 burgers", []want{
			{RuleMeals, greenops.CategoryMeals, "beef", 2},
		}},
		{"tofu is vegan", "tofu stir fry", []want{
			{RuleMeals, greenops.CategoryMeals, "vegan", 1},
		}},
		{"shopping with count", "bought 3 new shirts", []want{
			{RuleShopping, greenops.CategoryShopping, "clothing", 3},
		}},
		{"shopping without count", "Ordered a new laptop online", []want{
			{RuleShopping, greenops.CategoryShopping, "electronics", 1},
		}},
		{"energy hours", "ran the heater for 2 hours", []want{
			{RuleEnergy, greenops.CategoryEnergy, "heating", 2},
		}},
		{"energy minutes", "air conditioning 90 min", []want{
			{RuleEnergy, greenops.CategoryEnergy, "cooling", 1.5},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCandidates(t, Parse(tt.text), tt.want...)
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	for _, text := range []string{"", "   ", "hello there", "drove somewhere far"} {
		got := Parse(text)
		assert.NotNil(t, got, text)
		assert.Empty(t, got, text)
	}
}

func TestCandidate_Draft(t *testing.T) {
	got := Parse("walked 3 km")
	require.Len(t, got, 1)

	d := got[0].Draft()
	assert.Equal(t, greenops.CategoryTransport, d.Category)
	assert.Equal(t, "walk", d.Type)
	assert.Equal(t, ledger.SourceText, d.Source)
	require.NotNil(t, d.Magnitude)
	assert.InDelta(t, 3.0, *d.Magnitude, 1e-9)
}

func TestNew_CustomRules(t *testing.T) {
	p := New(Rule{
		Name:     "flight",
		Category: greenops.CategoryTransport,
		Pattern:  regexp.MustCompile(`\bflew\b`),
		Extract: func(_ []string) (Candidate, bool) {
			return Candidate{Type: "plane"}, true
		},
	})

	got := p.Parse("Flew home, ate chicken")
	require.Len(t, got, 1)
	assert.Equal(t, "flight", got[0].Rule)
	assert.Equal(t, "plane", got[0].Type)
	assert.Zero(t, got[0].CarbonKg(), "unknown type is zero")
}

func TestUnits(t *testing.T) {
	assert.InDelta(t, 1.61, toKilometres(1, "mi"), 1e-9)
	assert.InDelta(t, 7.0, toKilometres(7, "km"), 1e-9)
	assert.InDelta(t, 0.25, toHours(15, "minutes"), 1e-9)
	assert.InDelta(t, 3.0, toHours(3, "hrs"), 1e-9)

	_, ok := parseNumber("")
	assert.False(t, ok)
}

package pagination

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"defaults", *NewParams(), nil},
		{"offset mode", Params{Limit: 10, Offset: 20}, nil},
		{"page mode", Params{Page: 2, PageSize: 10}, nil},
		{"no limit", Params{}, nil},
		{"negative limit", Params{Limit: -1}, ErrInvalidLimit},
		{"limit too large", Params{Limit: MaxLimit + 1}, ErrInvalidLimit},
		{"negative offset", Params{Offset: -1}, ErrInvalidOffset},
		{"negative page", Params{Page: -1}, ErrInvalidPage},
		{"mixed modes", Params{Page: 1, PageSize: 5, Offset: 3}, ErrMixedPaginationModes},
		{"page size without page", Params{PageSize: 5}, ErrPageSizeWithoutPage},
		{"page without size", Params{Page: 1}, ErrInvalidPageSize},
		{"bad sort order", Params{Sort: "carbon:up"}, ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Apply(Params{Limit: 3}, items))
	assert.Equal(t, []int{6, 7}, Apply(Params{Limit: 3, Offset: 5}, items))
	assert.Equal(t, items, Apply(Params{}, items))
	assert.Equal(t, []int{4, 5, 6}, Apply(Params{Page: 2, PageSize: 3}, items))
	assert.Empty(t, Apply(Params{Offset: 10}, items))
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(Params{Page: 2, PageSize: 3}, 7)
	assert.Equal(t, Meta{CurrentPage: 2, PageSize: 3, TotalPages: 3, TotalItems: 7, HasPrevious: true, HasNext: true}, m)

	all := NewMeta(Params{}, 4)
	assert.Equal(t, 1, all.TotalPages)
	assert.False(t, all.HasNext)

	empty := NewMeta(Params{}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestParseSort(t *testing.T) {
	field, order, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSortField, field)
	assert.Equal(t, SortOrderDesc, order)

	field, order, err = ParseSort(" carbon : ASC ")
	require.NoError(t, err)
	assert.Equal(t, "carbon", field)
	assert.Equal(t, SortOrderAsc, order)

	_, _, err = ParseSort("a:b:c")
	require.ErrorIs(t, err, ErrInvalidSortFormat)

	_, _, err = ParseSort(":asc")
	require.ErrorIs(t, err, ErrEmptySortField)
}

func TestActivitySorter(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	acts := []ledger.Activity{
		{ID: "a", Category: greenops.CategoryMeals, Type: "beef", Date: "2026-06-02", CarbonKg: 2.5, CreatedAt: base},
		{ID: "b", Category: greenops.CategoryEnergy, Type: "heating", Date: "2026-06-01", CarbonKg: 4.6, CreatedAt: base},
		{ID: "c", Category: greenops.CategoryTransport, Type: "bike", Date: "2026-06-02", CarbonKg: 0, CreatedAt: base.Add(time.Hour)},
	}
	s := NewActivitySorter()

	ids := func(in []ledger.Activity) []string {
		out := make([]string, len(in))
		for i, a := range in {
			out[i] = a.ID
		}
		return out
	}

	got, err := s.Sort(acts, "carbon", SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))

	got, err = s.Sort(acts, "date", SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(got), "date ties broken by creation time")

	got, err = s.Sort(acts, "category", SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))

	assert.Equal(t, []string{"a", "b", "c"}, ids(acts), "input not modified")

	_, err = s.Sort(acts, "price", SortOrderAsc)
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Equal(t, []string{"carbon", "category", "date", "type"}, s.ValidFields())
}

func TestAddFlags(t *testing.T) {
	p := NewParams()
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	p.AddFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--page", "2", "--page-size", "5", "--sort", "type:asc"}))
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.PageSize)
	assert.Equal(t, "type:asc", p.Sort)
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

const (
	maxIDDisplayLen = 12
	truncateSuffix  = "…"
)

// ActivityRow is a display-ready activity.
type ActivityRow struct {
	ID       string
	Date     string
	Category string
	Type     string
	Amount   string
	Carbon   string
}

// NewActivityRow formats a for display.
func NewActivityRow(a ledger.Activity) ActivityRow {
	return ActivityRow{
		ID:       truncate(a.ID, maxIDDisplayLen),
		Date:     a.Date,
		Category: a.Category.Title(),
		Type:     a.Type,
		Amount:   fmt.Sprintf("%s %s", greenops.FormatFloat(a.Magnitude(), 1), a.Category.Unit()),
		Carbon:   fmt.Sprintf("%.2f", a.CarbonKg),
	}
}

// Fields returns the row as columns in ActivityColumns order.
func (r ActivityRow) Fields() []string {
	return []string{r.ID, r.Date, r.Category, r.Type, r.Amount, r.Carbon}
}

// ActivityColumns is the column layout shared by the table and plain output.
func ActivityColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 14},       //nolint:mnd // Column width.
		{Title: "Date", Width: 10},     //nolint:mnd // Column width.
		{Title: "Category", Width: 10}, //nolint:mnd // Column width.
		{Title: "Type", Width: 12},     //nolint:mnd // Column width.
		{Title: "Amount", Width: 10},   //nolint:mnd // Column width.
		{Title: "kg CO2", Width: 9},    //nolint:mnd // Column width.
	}
}

// NewActivityTable builds an interactive table of activities, newest first.
func NewActivityTable(st Styles, activities []ledger.Activity, height int) table.Model {
	rows := make([]table.Row, len(activities))
	for i, a := range activities {
		rows[i] = NewActivityRow(a).Fields()
	}

	t := table.New(
		table.WithColumns(ActivityColumns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height, 1)),
	)

	s := table.DefaultStyles()
	s.Header = st.TableHeader
	s.Selected = st.TableSelected
	t.SetStyles(s)

	return t
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + truncateSuffix
}

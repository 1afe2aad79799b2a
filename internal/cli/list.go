package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/cli/pagination"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/tui"
)

// listOutput is the JSON document written by `list --output json`.
type listOutput struct {
	Activities []ledger.Activity `json:"activities"`
	Pagination pagination.Meta   `json:"pagination"`
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		params   = pagination.NewParams()
		output   string
		category string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged activities",
		Example: `  # Twenty most recent activities
  ecotrack list

  # Highest-emitting first, as JSON
  ecotrack list --sort carbon:desc --output json

  # Second page of ten transport activities
  ecotrack list --category transport --page 2 --page-size 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			if err = params.Validate(); err != nil {
				return err
			}

			var filter greenops.Category
			if category != "" {
				if filter, err = greenops.ParseCategory(category); err != nil {
					return err
				}
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			activities := a.store.Ledger().All()
			if filter != "" {
				activities = filterCategory(activities, filter)
			}

			field, order, err := pagination.ParseSort(params.Sort)
			if err != nil {
				return err
			}
			sorted, err := pagination.NewActivitySorter().Sort(activities, field, order)
			if err != nil {
				return err
			}

			page := pagination.Apply(*params, sorted)
			meta := pagination.NewMeta(*params, len(sorted))

			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, listOutput{Activities: page, Pagination: meta}, page); done {
				return renderErr
			}

			if len(sorted) == 0 {
				fmt.Fprintln(w, "No activities yet. Log one with 'ecotrack log' or 'ecotrack say'.")
				return nil
			}

			tw := newTable(w, "ID", "DATE", "CATEGORY", "TYPE", "AMOUNT", "KG CO2", "SOURCE")
			for _, act := range page {
				row := tui.NewActivityRow(act)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					act.ID, row.Date, row.Category, row.Type, row.Amount, row.Carbon, act.Source)
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			if meta.TotalPages > 1 {
				fmt.Fprintf(w, "\nPage %d of %d (%d activities)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
			}
			return nil
		},
	}

	params.AddFlags(cmd)
	addOutputFlag(cmd, &output)
	cmd.Flags().StringVar(&category, "category", "",
		"only list one category ("+strings.Join(categoryNames(), ", ")+")")

	return cmd
}

func filterCategory(activities []ledger.Activity, c greenops.Category) []ledger.Activity {
	out := make([]ledger.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

func categoryNames() []string {
	names := make([]string, 0, len(greenops.Categories()))
	for _, c := range greenops.Categories() {
		names = append(names, string(c))
	}
	return names
}

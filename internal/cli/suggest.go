package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// suggestionRow pairs an activity with its lower-carbon alternative.
type suggestionRow struct {
	ActivityID string `json:"activity_id"`
	Date       string `json:"date"`
	greenops.Suggestion
}

// defaultSuggestLimit bounds how many recent activities are scanned.
const defaultSuggestLimit = 10

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	var (
		output string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "suggest [id]",
		Short: "Suggest lower-carbon alternatives for logged activities",
		Long: `With an ID (or unique prefix), shows the alternative for that activity.
Without one, scans recent activities and lists those with a better option,
largest saving first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			var candidates []ledger.Activity
			if len(args) == 1 {
				act, resolveErr := resolveActivity(a.store.Ledger(), args[0])
				if resolveErr != nil {
					return resolveErr
				}
				candidates = []ledger.Activity{act}
			} else {
				candidates = a.store.Ledger().Recent(limit)
			}

			rows := suggestionsFor(candidates)
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, rows, rows); done {
				return renderErr
			}

			if len(rows) == 0 {
				fmt.Fprintln(w, "Nothing to improve here. These are already low-carbon choices.")
				return nil
			}
			tw := newTable(w, "DATE", "ACTIVITY", "TRY INSTEAD", "SAVES KG CO2")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s/%s\t%s\t%s\n",
					r.Date, r.Category, r.Type, r.AlternativeLabel, formatCarbon(r.EstimatedSavingKg))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultSuggestLimit, "number of recent activities to scan")
	addOutputFlag(cmd, &output)
	return cmd
}

// suggestionsFor returns alternatives for activities that have one,
// largest estimated saving first.
func suggestionsFor(activities []ledger.Activity) []suggestionRow {
	rows := make([]suggestionRow, 0, len(activities))
	for _, act := range activities {
		if s, ok := act.Suggest(); ok {
			rows = append(rows, suggestionRow{ActivityID: act.ID, Date: act.Date, Suggestion: s})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EstimatedSavingKg > rows[j].EstimatedSavingKg
	})
	return rows
}

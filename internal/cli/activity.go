package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/nlparse"
	"github.com/rshade/ecotrack/internal/tui"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one activity.
var ErrAmbiguousID = errors.New("ambiguous activity ID")

// notUnderstoodMessage is shown when free text yields no activities.
const notUnderstoodMessage = `Sorry, I couldn't understand that. Try something like "drove 20km" or "had a beef burger".`

type logFlags struct {
	distance string
	quantity string
	hours    string
	date     string
}

// magnitudeFor returns the raw magnitude flag that applies to category and
// rejects flags that belong to another category. A value that is not a
// number is reported on warn and treated as absent.
func (f logFlags) magnitudeFor(category greenops.Category, warn io.Writer) (*float64, error) {
	given := map[string]string{"distance": f.distance, "quantity": f.quantity, "hours": f.hours}
	want := category.MagnitudeField()
	for name, v := range given {
		if v != "" && name != want {
			return nil, fmt.Errorf("--%s does not apply to %s (use --%s)", name, category, want)
		}
	}
	v := given[want]
	if v == "" {
		return nil, nil //nolint:nilnil // Absent magnitude uses the category default.
	}
	m := greenops.ParseMagnitude(v)
	if m == nil {
		fmt.Fprintf(warn, "Warning: --%s %q is not a number, using the %s default\n", want, v, category)
	}
	return m, nil
}

// NewLogCmd creates the log command.
func NewLogCmd() *cobra.Command {
	var flags logFlags

	cmd := &cobra.Command{
		Use:   "log <category> [type]",
		Short: "Log an activity",
		Long: `Logs one activity and prints the kg CO2 it emitted.

Categories and their magnitude flag:
  transport  --distance (km)
  meals      --quantity (meals, default 1)
  shopping   --quantity (items, default 1)
  energy     --hours

Unknown types are logged with zero emissions. The date defaults to today;
future dates are clamped to today.`,
		Example: `  ecotrack log transport car --distance 12
  ecotrack log meals vegan
  ecotrack log energy heating --hours 3 --date 2026-06-01`,
		Args: cobra.RangeArgs(1, 2), //nolint:mnd // category and optional type.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.distance, "distance", "", "distance in km (transport)")
	cmd.Flags().StringVar(&flags.quantity, "quantity", "", "count (meals, shopping)")
	cmd.Flags().StringVar(&flags.hours, "hours", "", "duration in hours (energy)")
	cmd.Flags().StringVar(&flags.date, "date", "", "activity date as YYYY-MM-DD (default today)")

	return cmd
}

func runLog(cmd *cobra.Command, args []string, flags logFlags) error {
	category, err := greenops.ParseCategory(args[0])
	if err != nil {
		return fmt.Errorf("%w (valid: %s)", err, strings.Join(categoryNames(), ", "))
	}

	activityType := greenops.DefaultType(category)
	if len(args) > 1 {
		activityType = strings.ToLower(strings.TrimSpace(args[1]))
	}
	if !greenops.IsKnownType(category, activityType) {
		cmd.PrintErrf("Warning: unknown %s type %q, logged with 0 kg CO2 (known: %s)\n",
			category, activityType, strings.Join(greenops.Types(category), ", "))
	}

	magnitude, err := flags.magnitudeFor(category, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	logged := a.store.Ledger().Log(ledger.Draft{
		Category:  category,
		Type:      activityType,
		Magnitude: magnitude,
		Date:      flags.date,
		Source:    ledger.SourceManual,
	}, a.now)

	if err = a.save(); err != nil {
		return err
	}

	printLogged(cmd.OutOrStdout(), logged)
	return nil
}

// NewSayCmd creates the say command, which logs activities from free text.
func NewSayCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Log activities described in plain English",
		Example: `  ecotrack say "drove 50km and ate beef for lunch"
  ecotrack say "ran the heater for 2 hours" --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSay(cmd, strings.Join(args, " "), dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be logged without saving")

	return cmd
}

func runSay(cmd *cobra.Command, text string, dryRun bool) error {
	candidates := nlparse.Parse(text)
	if len(candidates) == 0 {
		cmd.PrintErrln(notUnderstoodMessage)
		return nil
	}

	out := cmd.OutOrStdout()
	if dryRun {
		for _, c := range candidates {
			fmt.Fprintf(out, "Would log %s/%s: %s kg CO2 (matched %q)\n",
				c.Category, c.Type, formatCarbon(c.CarbonKg()), c.Match)
		}
		return nil
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	logged := make([]ledger.Activity, 0, len(candidates))
	for _, c := range candidates {
		logged = append(logged, a.store.Ledger().Log(c.Draft(), a.now))
	}
	if err = a.save(); err != nil {
		return err
	}

	for _, l := range logged {
		printLogged(out, l)
	}
	return nil
}

// printLogged prints a logged activity and its lower-carbon alternative.
func printLogged(w io.Writer, a ledger.Activity) {
	row := tui.NewActivityRow(a)
	fmt.Fprintf(w, "%s Logged %s/%s: %s = %s kg CO2 (id %s)\n",
		tui.IconCheck, a.Category, a.Type, row.Amount, formatCarbon(a.CarbonKg), a.ID)
	if s, ok := a.Suggest(); ok {
		fmt.Fprintf(w, "  Try %s next time to save ~%s kg CO2\n",
			s.AlternativeLabel, formatCarbon(s.EstimatedSavingKg))
	}
}

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an activity by ID or unique ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			target, err := resolveActivity(a.store.Ledger(), args[0])
			if err != nil {
				return err
			}
			removed, err := a.store.Ledger().Remove(target.ID)
			if err != nil {
				return err
			}
			if err = a.save(); err != nil {
				return err
			}

			cmd.Printf("Removed %s/%s on %s (%s kg CO2)\n",
				removed.Category, removed.Type, removed.Date, formatCarbon(removed.CarbonKg))
			return nil
		},
	}
}

// resolveActivity finds an activity by exact ID or unique prefix.
func resolveActivity(l *ledger.Ledger, idOrPrefix string) (ledger.Activity, error) {
	if act, ok := l.Get(idOrPrefix); ok {
		return act, nil
	}

	var matches []ledger.Activity
	for _, act := range l.All() {
		if strings.HasPrefix(act.ID, idOrPrefix) {
			matches = append(matches, act)
		}
	}
	switch len(matches) {
	case 0:
		return ledger.Activity{}, fmt.Errorf("%w: %s", ledger.ErrActivityNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return ledger.Activity{}, fmt.Errorf("%w: %q matches %d activities", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}

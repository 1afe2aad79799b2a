package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/gamify"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/tui"
)

// stylesFor returns the styles for the user's saved theme.
func stylesFor(a *app) tui.Styles {
	return tui.NewStyles(a.store.Snapshot().Theme)
}

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, streak, category breakdown and projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			s := a.summary()
			engine.LogProjection(a.ctx, s.Projection)

			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, s, s.Breakdown.Shares); done {
				return renderErr
			}

			renderStatsText(w, stylesFor(a), s)
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// renderStatsText writes the human-readable stats report.
func renderStatsText(w io.Writer, st tui.Styles, s engine.Summary) {
	fmt.Fprintln(w, tui.RenderSummary(st, s, tui.TerminalWidth(os.Stdout)))
	fmt.Fprintln(w, tui.RenderBreakdown(st, s.Breakdown))
	if eq := greenops.Equivalencies(s.TotalKg); !eq.IsEmpty {
		fmt.Fprintln(w, eq.DisplayText)
	}
	fmt.Fprintf(w, "Estimated CO2 saved: %s (rough estimate)\n", greenops.FormatKg(s.SavedEstimateKg))
	fmt.Fprintln(w, s.Insight)
}

// NewChartCmd creates the chart command.
func NewChartCmd() *cobra.Command {
	var (
		window string
		output string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart daily emissions over a window",
		Example: `  ecotrack chart
  ecotrack chart --window quarter --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := engine.ParseWindow(window)
			if err != nil {
				return err
			}
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			points := a.engine.Series(w, a.now)
			out := cmd.OutOrStdout()
			if done, renderErr := renderStructured(out, format, points, points); done {
				return renderErr
			}

			st := stylesFor(a)
			fmt.Fprintln(out, st.Header.Render(fmt.Sprintf("LAST %d DAYS", w.Days())))
			fmt.Fprintln(out, tui.RenderChart(st, points, tui.TerminalWidth(os.Stdout)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", string(engine.WindowWeek), "week, month or quarter")
	addOutputFlag(cmd, &output)
	return cmd
}

// NewAchievementsCmd creates the achievements command.
func NewAchievementsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and which are unlocked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			statuses := a.summary().Achievements
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, statuses, statuses); done {
				return renderErr
			}
			fmt.Fprintln(w, tui.RenderAchievements(stylesFor(a), statuses))
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// NewLevelCmd creates the level command.
func NewLevelCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "level",
		Short: "Show your level and progress to the next one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			ls := a.summary().Level
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, ls, []gamify.LevelStatus{ls}); done {
				return renderErr
			}
			fmt.Fprintln(w, tui.RenderLevel(stylesFor(a), ls))
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// NewLeaderboardCmd creates the leaderboard command.
func NewLeaderboardCmd() *cobra.Command {
	var (
		output string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank your daily average against sample peers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			entries := engine.Leaderboard(a.engine.Average(a.now), name)
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, entries, entries); done {
				return renderErr
			}

			tw := newTable(w, "RANK", "NAME", "KG/DAY")
			for _, e := range entries {
				marker := ""
				if e.IsUser {
					marker = " " + tui.IconArrowRight
				}
				fmt.Fprintf(tw, "%d\t%s%s\t%s\n", e.Rank, e.Name, marker, formatCarbon(e.AvgDailyKg))
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nYou are #%d of %d (peers are sample personas).\n", engine.UserRank(entries), len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "You", "name to show for yourself")
	addOutputFlag(cmd, &output)
	return cmd
}

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare your daily average with national averages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			avg := a.engine.Average(a.now)
			rows := engine.CountryComparison(avg)
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, rows, rows); done {
				return renderErr
			}

			fmt.Fprintf(w, "Your daily average: %s\n\n", greenops.FormatKg(avg))
			tw := newTable(w, "COUNTRY", "KG/DAY", "YOU VS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Country, greenops.FormatFloat(r.DailyKg, 1), signedPercent(r.DeltaPct))
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func signedPercent(p float64) string {
	if p > 0 {
		return fmt.Sprintf("+%.0f%%", p)
	}
	return fmt.Sprintf("%.0f%%", p)
}

// NewShareCmd creates the share command.
func NewShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print a shareable progress blurb",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			s := a.summary()
			cmd.Println(engine.ShareText(s.TotalKg, s.AvgDailyKg, s.Streak))
			return nil
		},
	}
}

// NewTipCmd creates the tip command.
func NewTipCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Show the eco tip of the day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				for _, t := range engine.Tips() {
					cmd.Println(t)
				}
				return nil
			}
			cmd.Println(engine.TipFor(nowFrom(cmd.Context())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every tip")
	return cmd
}

// NewThemeCmd creates the theme command.
func NewThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Long:      "With no argument, toggles between light and dark.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(ledger.ThemeLight), string(ledger.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			next := a.store.Snapshot().Theme.Toggle()
			if len(args) == 1 {
				if next, err = ledger.ParseTheme(args[0]); err != nil {
					return err
				}
			}
			if err = a.store.Update(func(st *ledger.State) error {
				st.Theme = next
				return nil
			}); err != nil {
				return err
			}
			if err = a.save(); err != nil {
				return err
			}
			cmd.Printf("Theme set to %s\n", next)
			return nil
		},
	}
}

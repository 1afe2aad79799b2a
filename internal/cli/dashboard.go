package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/tui"
)

// NewDashboardCmd creates the dashboard command, the interactive TUI.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Opens a full-screen dashboard with your summary, activities, chart and
achievements. Use tab to switch views and t to toggle the theme; the theme
you leave with is saved.

When stdout is not a terminal the plain stats report is printed instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			if !tui.IsTTY(os.Stdout) {
				renderStatsText(cmd.OutOrStdout(), stylesFor(a), a.summary())
				return nil
			}

			start := a.store.Snapshot().Theme
			model := tui.NewDashboardModel(a.ctx, a.engine, start, func() time.Time { return nowFrom(a.ctx) })
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(a.ctx)).Run()
			if err != nil {
				return fmt.Errorf("failed to run interactive TUI: %w", err)
			}

			dm, ok := final.(tui.DashboardModel)
			if !ok || dm.Theme() == start {
				return nil
			}
			if err = a.store.Update(func(st *ledger.State) error {
				st.Theme = dm.Theme()
				return nil
			}); err != nil {
				return err
			}
			return a.save()
		},
	}
}

package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ecotrack CLI.
// It wires up configuration, logging, tracing and every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithClock(ver, time.Now)
}

// NewRootCmdWithClock creates the root command with an explicit clock so
// tests can pin "today".
func NewRootCmdWithClock(ver string, now func() time.Time) *cobra.Command {
	var (
		logResult  *logging.Result
		projectDir string
		statePath  string
	)

	cmd := &cobra.Command{
		Use:   "ecotrack",
		Short: "Personal carbon footprint tracker",
		Long: `EcoTrack: log everyday activities, see the kg CO2 they emit and
get lower-carbon alternatives, streaks, levels and weekly challenges.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wd, _ := os.Getwd()
			resolved := config.ResolveProjectDir(cmd.Context(), projectDir, wd)
			config.SetResolvedProjectDir(resolved)

			cfg := config.NewWithProjectDir(cmd.Context(), resolved)
			if cmd.Flags().Changed("state") {
				cfg.Store.Path = statePath
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result

			cmd.SetContext(withClock(cmd.Context(), now))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"directory holding a project-local .ecotrack/config.yaml")
	cmd.PersistentFlags().StringVar(&statePath, "state", "",
		"state file path (overrides store.path)")

	cmd.AddCommand(
		NewLogCmd(), NewSayCmd(), NewRemoveCmd(), NewListCmd(),
		NewStatsCmd(), NewChartCmd(), NewSuggestCmd(),
		NewAchievementsCmd(), NewLevelCmd(), NewLeaderboardCmd(), NewCompareCmd(),
		newChallengeCmd(), newCoachCmd(), NewServeCmd(),
		NewShareCmd(), NewTipCmd(), NewThemeCmd(), NewOnboardCmd(),
		NewImportCmd(), NewExportCmd(), NewDashboardCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Log a 12 km car trip
  ecotrack log transport car --distance 12

  # Log from free text
  ecotrack say "drove 20km and had a beef burger for lunch"

  # Show your totals, streak and projection
  ecotrack stats

  # Chart the last month
  ecotrack chart --window month

  # Start a weekly challenge
  ecotrack challenge start bike-week

  # Ask the coach (requires 'ecotrack serve' running)
  ecotrack coach ask "how can I cut my commute emissions?"

  # Open the interactive dashboard
  ecotrack dashboard`

// newChallengeCmd creates the challenge command group.
func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "challenge", Short: "Weekly challenge commands"}
	cmd.AddCommand(
		NewChallengeListCmd(), NewChallengeStartCmd(), NewChallengeStatusCmd(),
		NewChallengeCompleteCmd(), NewChallengeCancelCmd(), NewChallengeHistoryCmd(),
	)
	return cmd
}

// newCoachCmd creates the coach command group.
func newCoachCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "coach", Short: "Chat coach commands"}
	cmd.AddCommand(NewCoachAskCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/gamify"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// challengeStatus is the JSON shape of `challenge status`.
type challengeStatus struct {
	Challenge gamify.Challenge         `json:"challenge"`
	Active    ledger.ActiveChallenge   `json:"active"`
	Progress  gamify.ChallengeProgress `json:"progress"`
}

// NewChallengeListCmd creates the challenge list command.
func NewChallengeListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available weekly challenges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			catalog := gamify.Challenges()
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, catalog, catalog); done {
				return renderErr
			}

			tw := newTable(w, "ID", "NAME", "CATEGORY", "GOAL")
			for _, c := range catalog {
				fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", c.ID, c.Icon, c.Name, c.Category, c.Description)
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// NewChallengeStartCmd creates the challenge start command.
func NewChallengeStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a weekly challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			var started gamify.Challenge
			if err = a.store.Update(func(st *ledger.State) error {
				var startErr error
				started, startErr = gamify.Start(st, args[0], a.now)
				return startErr
			}); err != nil {
				return err
			}
			if err = a.save(); err != nil {
				return err
			}

			cmd.Printf("%s Started %s: %s\n", started.Icon, started.Name, started.Description)
			cmd.Printf("Progress is scored over the last %d days. Check it with 'ecotrack challenge status'.\n",
				gamify.ChallengeWindowDays)
			return nil
		},
	}
}

// NewChallengeStatusCmd creates the challenge status command.
func NewChallengeStatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress on the active challenge",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			st := a.store.Snapshot()
			c, p, err := gamify.ActiveProgress(st, st.Activities, a.now)
			if errors.Is(err, ledger.ErrNoActiveChallenge) {
				cmd.Println("No active challenge. Pick one with 'ecotrack challenge list'.")
				return nil
			}
			if err != nil {
				return err
			}

			status := challengeStatus{Challenge: c, Active: *st.ActiveChallenge, Progress: p}
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, status, []challengeStatus{status}); done {
				return renderErr
			}

			fmt.Fprintf(w, "%s %s: %s\n", c.Icon, c.Name, c.Description)
			fmt.Fprintf(w, "Progress: %s / %s (%s)\n",
				greenops.FormatFloat(p.Value, 1), greenops.FormatFloat(p.Target, 0), greenops.FormatFloat(p.Percent, 0)+"%")
			if p.Achieved {
				fmt.Fprintln(w, "Goal reached! Run 'ecotrack challenge complete' to record it.")
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// NewChallengeCompleteCmd creates the challenge complete command.
func NewChallengeCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Finish the active challenge and record its result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return endChallenge(cmd, true)
		},
	}
}

// NewChallengeCancelCmd creates the challenge cancel command.
func NewChallengeCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Abandon the active challenge",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return endChallenge(cmd, false)
		},
	}
}

func endChallenge(cmd *cobra.Command, complete bool) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	activities := a.store.Ledger().All()
	var ended ledger.CompletedChallenge
	if err = a.store.Update(func(st *ledger.State) error {
		var endErr error
		if complete {
			ended, endErr = gamify.Complete(st, activities, a.now)
		} else {
			ended, endErr = gamify.Cancel(st, activities, a.now)
		}
		return endErr
	}); err != nil {
		return err
	}
	if err = a.save(); err != nil {
		return err
	}

	switch {
	case !complete:
		cmd.Printf("Cancelled %s.\n", ended.ChallengeID)
	case ended.Achieved:
		cmd.Printf("%s Completed %s. Goal achieved!\n", "🏆", ended.ChallengeID)
	default:
		cmd.Printf("Completed %s with progress %s. Goal not reached this time.\n",
			ended.ChallengeID, greenops.FormatFloat(ended.FinalProgress, 1))
	}
	return nil
}

// NewChallengeHistoryCmd creates the challenge history command.
func NewChallengeHistoryCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished challenges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			history := a.store.Snapshot().CompletedChallenges
			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, history, history); done {
				return renderErr
			}
			if len(history) == 0 {
				fmt.Fprintln(w, "No finished challenges yet.")
				return nil
			}

			tw := newTable(w, "CHALLENGE", "STARTED", "ENDED", "OUTCOME", "PROGRESS", "ACHIEVED")
			for _, h := range history {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n",
					h.ChallengeID, ledger.DayKey(h.StartedAt), ledger.DayKey(h.EndedAt),
					h.Outcome, greenops.FormatFloat(h.FinalProgress, 1), h.Achieved)
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

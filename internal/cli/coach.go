package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/coach"
	"github.com/rshade/ecotrack/internal/config"
)

// NewCoachAskCmd creates the coach ask command.
func NewCoachAskCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the sustainability coach about your footprint",
		Long: `Sends your question with a summary of your stats to the coach proxy
configured at coach.proxy_url (see 'ecotrack serve'). No credential is
stored or sent by the client. When the coach is disabled or unreachable a
fallback message is shown instead.`,
		Example: `  ecotrack coach ask "what is my biggest source of emissions?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig().Coach
			var c *coach.Coach
			if cfg.Enabled && cfg.ProxyURL != "" {
				c = coach.New(coach.NewProxyClient(cfg.ProxyURL, cfg.Timeout), cfg.Timeout)
			}

			reply := c.Ask(a.ctx, strings.Join(args, " "), a.summary(),
				a.store.Ledger().Recent(coach.RecentActivityLimit))

			if jsonOut {
				return renderJSON(cmd.OutOrStdout(), reply)
			}
			cmd.Println(reply.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the reply as JSON")
	return cmd
}

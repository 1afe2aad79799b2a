package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
)

// configEntry is one key/value row of `config list`.
type configEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Env   string `json:"env"`
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Long: `Prints the effective value of a dotted key, after the project config and
ECOTRACK_* environment overrides. Run 'ecotrack config list' for all keys.`,
		Example: `  ecotrack config get coach.proxy_url`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one value in the global configuration file",
		Long: `Parses value into the dotted key and writes ~/.ecotrack/config.yaml.
Environment overrides are not written back. The coach API key is not a
configuration value; set ECOTRACK_COACH_API_KEY for 'ecotrack serve'.`,
		Example: `  ecotrack config set output.default_format json
  ecotrack config set coach.timeout 30s
  ecotrack config set coach.enabled false`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("refusing to save invalid configuration: %w", err)
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every configuration key and its effective value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig()
			entries := make([]configEntry, 0, len(config.Keys()))
			for _, k := range config.Keys() {
				v, getErr := cfg.Get(k)
				if getErr != nil {
					return getErr
				}
				entries = append(entries, configEntry{Key: k, Value: v, Env: config.EnvName(k)})
			}

			w := cmd.OutOrStdout()
			if done, renderErr := renderStructured(w, format, entries, entries); done {
				return renderErr
			}
			tw := newTable(w, "KEY", "VALUE", "ENV")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Value, e.Env)
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates ~/.ecotrack/config.yaml for syntax and semantic correctness,
after ECOTRACK_* environment overrides are applied.

This includes:
- YAML syntax
- Output format and precision
- Logging level and format
- Coach proxy URL and timeout
- Server address and token limit`,
		Example: `  # Validate current configuration
  ecotrack config validate

  # Validate and show detailed information
  ecotrack config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic. Unlike
// config.New it surfaces a malformed file instead of ignoring it.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.Default()
	if err := cfg.Load(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("%s Configuration is valid\n", "✅")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  State file: %s\n", cfg.Store.Path)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}

	printCoachDetails(cmd, cfg)
}

// printCoachDetails prints the coach client and proxy settings.
func printCoachDetails(cmd *cobra.Command, cfg *config.Config) {
	if !cfg.Coach.Enabled {
		cmd.Println("  Coach: disabled")
	} else {
		cmd.Printf("  Coach: %s (timeout %s)\n", cfg.Coach.ProxyURL, cfg.Coach.Timeout)
	}
	cmd.Printf("  Proxy: listens on %s, forwards to %s (model %s, max %d tokens)\n",
		cfg.Server.Address, cfg.Server.UpstreamURL, cfg.Server.Model, cfg.Server.MaxTokens)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/tui"
	"github.com/rshade/ecotrack/pkg/version"
)

// coachProbeTimeout bounds the coach proxy health check.
const coachProbeTimeout = 2 * time.Second

// StepStatus represents the outcome of a single onboarding step.
type StepStatus int

const (
	// StepSuccess indicates the step completed successfully.
	StepSuccess StepStatus = iota
	// StepWarning indicates the step completed with a non-fatal issue.
	StepWarning
	// StepSkipped indicates the step was intentionally skipped via flag.
	StepSkipped
	// StepError indicates the step failed.
	StepError
)

// StepResult describes the outcome of executing a single onboarding step.
type StepResult struct {
	Name     string
	Status   StepStatus
	Message  string
	Critical bool
	Err      error
}

// OnboardOptions holds the flags of the onboard command.
type OnboardOptions struct {
	SkipCoachCheck bool
	NonInteractive bool
}

// OnboardResult is the aggregate outcome of all onboarding steps.
type OnboardResult struct {
	Steps       []StepResult
	HasErrors   bool
	HasWarnings bool
}

// formatStatus returns a status marker appropriate for the output mode.
func formatStatus(status StepStatus, nonInteractive bool) string {
	if nonInteractive {
		switch status {
		case StepSuccess:
			return "[OK]"
		case StepWarning:
			return "[WARN]"
		case StepSkipped:
			return "[SKIP]"
		case StepError:
			return "[ERR]"
		default:
			return "[??]"
		}
	}

	switch status {
	case StepSuccess:
		return "\u2713" // ✓
	case StepWarning:
		return "!"
	case StepSkipped:
		return "-"
	case StepError:
		return "\u2717" // ✗
	default:
		return "?"
	}
}

// NewOnboardCmd creates the onboard command, the first-run walkthrough.
func NewOnboardCmd() *cobra.Command {
	var opts OnboardOptions

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up EcoTrack and show how to get started",
		Long: `Creates the EcoTrack home directory and default configuration, checks the
state file and the coach proxy, and marks onboarding as done.

Safe to run more than once. Existing configuration and data are preserved.`,
		Example: `  ecotrack onboard
  ecotrack onboard --non-interactive --skip-coach-check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnboard(cmd, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false,
		"Disable TTY-dependent output (status symbols)")
	cmd.Flags().BoolVar(&opts.SkipCoachCheck, "skip-coach-check", false,
		"Skip probing the coach proxy")

	return cmd
}

// runOnboard runs every step, collecting results; only a failed critical
// step makes the command fail.
func runOnboard(cmd *cobra.Command, opts *OnboardOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.FromContext(ctx)

	if !opts.NonInteractive && !isTerminal(os.Stdin) {
		opts.NonInteractive = true
	}

	result := &OnboardResult{}
	record := func(steps ...StepResult) {
		for _, s := range steps {
			printStep(cmd, s, opts.NonInteractive)
			result.Steps = append(result.Steps, s)
		}
	}

	record(stepDisplayVersion())
	record(stepCreateHome())
	record(stepInitConfig())
	record(stepCheckState(cmd))

	if opts.SkipCoachCheck {
		record(StepResult{Name: "Coach check", Status: StepSkipped, Message: "Skipped coach proxy check"})
	} else {
		record(stepCheckCoach(ctx, config.GetGlobalConfig().Coach))
	}

	for _, s := range result.Steps {
		if s.Status == StepError && s.Critical {
			result.HasErrors = true
		}
		if s.Status == StepWarning {
			result.HasWarnings = true
		}
	}

	if !result.HasErrors {
		record(stepMarkOnboarded(cmd))
	}

	printSummary(cmd, result)

	if result.HasErrors {
		log.Error().
			Ctx(ctx).
			Str("component", "onboard").
			Msg("onboarding completed with critical errors")
		return errors.New("onboarding failed: one or more critical steps failed")
	}
	return nil
}

// printStep outputs a single step's status line.
func printStep(cmd *cobra.Command, step StepResult, nonInteractive bool) {
	marker := formatStatus(step.Status, nonInteractive)
	cmd.Printf("%s %s\n", marker, step.Message)
}

// printSummary outputs the closing message.
func printSummary(cmd *cobra.Command, result *OnboardResult) {
	cmd.Println()
	if result.HasErrors {
		cmd.Println("Onboarding completed with errors. Review the messages above for remediation steps.")
		return
	}
	cmd.Println(`You're all set! Try:
  ecotrack log transport bike --distance 5
  ecotrack say "had a vegan lunch and took the train 30km"
  ecotrack stats
  ecotrack dashboard`)
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return tui.IsTTY(f)
}

// stepDisplayVersion reports the EcoTrack version and Go runtime.
func stepDisplayVersion() StepResult {
	return StepResult{
		Name:    "Version display",
		Status:  StepSuccess,
		Message: fmt.Sprintf("EcoTrack v%s (%s)", version.GetVersion(), runtime.Version()),
	}
}

// stepCreateHome creates the EcoTrack home directory.
func stepCreateHome() StepResult {
	dir, err := config.GetConfigDir()
	if err != nil {
		return StepResult{Name: "Directory creation", Status: StepError, Critical: true, Err: err,
			Message: fmt.Sprintf("Could not determine home directory: %v", err)}
	}

	if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
		return StepResult{Name: "Directory creation", Status: StepSuccess, Critical: true,
			Message: fmt.Sprintf("Directory exists: %s", dir)}
	}

	if mkErr := config.EnsureConfigDir(); mkErr != nil {
		return StepResult{
			Name:   "Directory creation",
			Status: StepError,
			Message: fmt.Sprintf(
				"Failed to create %s: %v\n  Try: export ECOTRACK_HOME=/path/to/writable/directory", dir, mkErr),
			Critical: true,
			Err:      mkErr,
		}
	}
	return StepResult{Name: "Directory creation", Status: StepSuccess, Critical: true,
		Message: fmt.Sprintf("Created %s", dir)}
}

// stepInitConfig writes the default config file if one does not exist.
func stepInitConfig() StepResult {
	dir, err := config.GetConfigDir()
	if err != nil {
		return StepResult{Name: "Config initialization", Status: StepError, Critical: true, Err: err,
			Message: fmt.Sprintf("Failed to initialize config: %v", err)}
	}
	configPath := filepath.Join(dir, "config.yaml")

	if _, statErr := os.Stat(configPath); statErr == nil {
		return StepResult{Name: "Config initialization", Status: StepSuccess, Critical: true,
			Message: fmt.Sprintf("Config already exists (%s)", configPath)}
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if saveErr := cfg.Save(); saveErr != nil {
		return StepResult{Name: "Config initialization", Status: StepError, Critical: true, Err: saveErr,
			Message: fmt.Sprintf("Failed to initialize config: %v", saveErr)}
	}
	return StepResult{Name: "Config initialization", Status: StepSuccess, Critical: true,
		Message: fmt.Sprintf("Initialized config (%s)", configPath)}
}

// stepCheckState loads the state file and reports what it holds.
func stepCheckState(cmd *cobra.Command) StepResult {
	a, err := openApp(cmd)
	if err != nil {
		msg := fmt.Sprintf("Could not read state: %v", err)
		if errors.Is(err, ledger.ErrStateCorrupted) {
			msg += "\n  Move the file aside to start fresh: " + config.GetStatePath()
		}
		return StepResult{Name: "State check", Status: StepError, Critical: true, Err: err, Message: msg}
	}

	n := a.store.Ledger().Len()
	if n == 0 {
		return StepResult{Name: "State check", Status: StepSuccess,
			Message: fmt.Sprintf("New activity log at %s", a.store.FilePath())}
	}
	return StepResult{Name: "State check", Status: StepSuccess,
		Message: fmt.Sprintf("Found %d logged activities", n)}
}

// stepCheckCoach probes the coach proxy's /healthz endpoint.
func stepCheckCoach(ctx context.Context, cc config.CoachConfig) StepResult {
	if !cc.Enabled {
		return StepResult{Name: "Coach check", Status: StepSkipped, Message: "Coach disabled (coach.enabled=false)"}
	}

	healthURL, err := healthURLFor(cc.ProxyURL)
	if err != nil {
		return StepResult{Name: "Coach check", Status: StepWarning, Err: err,
			Message: fmt.Sprintf("Invalid coach.proxy_url: %v", err)}
	}

	probeCtx, cancel := context.WithTimeout(ctx, coachProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, healthURL, nil)
	if err != nil {
		return StepResult{Name: "Coach check", Status: StepWarning, Err: err,
			Message: fmt.Sprintf("Invalid coach.proxy_url: %v", err)}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return StepResult{Name: "Coach check", Status: StepWarning, Err: err,
			Message: "Coach proxy not reachable; the coach will use fallback answers.\n  Start it with: ecotrack serve"}
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StepResult{Name: "Coach check", Status: StepWarning,
			Message: fmt.Sprintf("Coach proxy answered %d at %s", resp.StatusCode, healthURL)}
	}
	return StepResult{Name: "Coach check", Status: StepSuccess,
		Message: fmt.Sprintf("Coach proxy reachable at %s", cc.ProxyURL)}
}

// healthURLFor maps http://host/v1/coach to http://host/healthz.
func healthURLFor(proxyURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(proxyURL))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", proxyURL)
	}
	u.Path = "/healthz"
	u.RawQuery = ""
	return u.String(), nil
}

// stepMarkOnboarded records that onboarding finished.
func stepMarkOnboarded(cmd *cobra.Command) StepResult {
	a, err := openApp(cmd)
	if err == nil {
		err = a.store.Update(func(st *ledger.State) error {
			st.Onboarded = true
			return nil
		})
	}
	if err == nil {
		err = a.save()
	}
	if err != nil {
		return StepResult{Name: "Onboarding", Status: StepWarning, Err: err,
			Message: fmt.Sprintf("Could not record onboarding: %v", err)}
	}
	return StepResult{Name: "Onboarding", Status: StepSuccess, Message: "Onboarding complete"}
}

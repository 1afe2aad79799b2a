package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine/batch"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/nlparse"
)

// ErrNotAnExport is returned when a .json import is not an EcoTrack export.
var ErrNotAnExport = errors.New("not an EcoTrack export")

// importLine is one non-blank, non-comment line of a text import.
type importLine struct {
	number int
	date   string
	text   string
}

// importReport summarizes an import.
type importReport struct {
	Lines      int      `json:"lines"`
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Unparsed   []string `json:"unparsed,omitempty"`
	Duplicates int      `json:"duplicates,omitempty"`
}

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	var (
		dryRun    bool
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import activities from a text file or an export",
		Long: `Reads one free-text entry per line and logs whatever the parser
understands, the same way 'ecotrack say' does. A line may start with a
YYYY-MM-DD date. Blank lines and lines starting with # are ignored.

A file ending in .json is read as an 'ecotrack export' and its activities
are merged, skipping IDs that are already logged.`,
		Example: `  ecotrack import week.txt
  ecotrack import backup.json
  ecotrack import week.txt --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.EqualFold(filepath.Ext(args[0]), ".json") {
				return runImportExport(cmd, args[0], dryRun)
			}
			return runImportText(cmd, args[0], dryRun, batchSize)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be imported without saving")
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultBatchSize, "lines processed per batch")

	return cmd
}

func runImportText(cmd *cobra.Command, path string, dryRun bool, batchSize int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	lines, err := readImportLines(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	processor, err := batch.NewProcessor[importLine](batchSize)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	log := logging.FromContext(a.ctx)
	processor.WithProgressCallback(func(p batch.Progress) {
		log.Debug().
			Str("component", "cli").
			Str("operation", "import").
			Int("processed", p.ProcessedItems).
			Int("total", p.TotalItems).
			Float64("percent", p.PercentComplete()).
			Msg("import progress")
	})

	report := importReport{Lines: len(lines)}
	err = processor.Process(a.ctx, lines, func(_ context.Context, items []importLine, _, _ int) error {
		for _, line := range items {
			candidates := nlparse.Parse(line.text)
			if len(candidates) == 0 {
				report.Unparsed = append(report.Unparsed, fmt.Sprintf("line %d: %s", line.number, line.text))
				continue
			}
			for _, c := range candidates {
				report.Imported++
				if dryRun {
					continue
				}
				d := c.Draft()
				d.Date = line.date
				d.Source = ledger.SourceImport
				a.store.Ledger().Log(d, a.now)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	report.Skipped = len(report.Unparsed)

	if !dryRun && report.Imported > 0 {
		if err = a.save(); err != nil {
			return err
		}
	}

	printImportReport(cmd, report, dryRun)
	return nil
}

// readImportLines splits r into entries, peeling off a leading date.
func readImportLines(r io.Reader) ([]importLine, error) {
	var lines []importLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		line := importLine{number: n, text: text}
		if head, rest, ok := strings.Cut(text, " "); ok {
			if _, err := time.Parse(time.DateOnly, strings.TrimSuffix(head, ":")); err == nil {
				line.date = strings.TrimSuffix(head, ":")
				line.text = strings.TrimSpace(rest)
			}
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func runImportExport(cmd *cobra.Command, path string, dryRun bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	var exported ledger.State
	if err = json.Unmarshal(data, &exported); err != nil {
		return fmt.Errorf("%w: %w", ErrNotAnExport, err)
	}
	if exported.SchemaVersion == "" {
		return fmt.Errorf("%w: missing schema_version", ErrNotAnExport)
	}
	if err = ledger.CheckSchema(exported.SchemaVersion); err != nil {
		return fmt.Errorf("%w: %w", ErrNotAnExport, err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	report := importReport{Lines: len(exported.Activities)}
	seen := make(map[string]struct{}, len(exported.Activities))
	for _, act := range exported.Activities {
		_, repeated := seen[act.ID]
		if _, exists := a.store.Ledger().Get(act.ID); exists || repeated {
			report.Duplicates++
			continue
		}
		seen[act.ID] = struct{}{}
		act.Date = ledger.NormalizeDate(act.Date, a.now)
		report.Imported++
		if dryRun {
			continue
		}
		if insertErr := a.store.Ledger().Insert(act); insertErr != nil {
			return insertErr
		}
	}

	if !dryRun && report.Imported > 0 {
		if err = a.save(); err != nil {
			return err
		}
	}

	printImportReport(cmd, report, dryRun)
	return nil
}

func printImportReport(cmd *cobra.Command, r importReport, dryRun bool) {
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	cmd.Printf("%s %d activities from %d entries\n", verb, r.Imported, r.Lines)
	if r.Duplicates > 0 {
		cmd.Printf("Skipped %d already logged\n", r.Duplicates)
	}
	if len(r.Unparsed) > 0 {
		cmd.PrintErrf("Could not understand %d entries:\n", len(r.Unparsed))
		for _, u := range r.Unparsed {
			cmd.PrintErrf("  %s\n", u)
		}
	}
}

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		file  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all EcoTrack data as JSON",
		Long: `Writes activities, streak, challenges and settings as JSON to stdout or
to --file. The output can be read back with 'ecotrack import <file>.json'.`,
		Example: `  ecotrack export > backup.json
  ecotrack export --file backup.json --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			snapshot := a.store.Snapshot()

			if file == "" {
				return renderJSON(cmd.OutOrStdout(), snapshot)
			}

			if _, statErr := os.Stat(file); statErr == nil && !force {
				if !confirmOverwriteWithStdin(cmd.OutOrStdout(), file).Accepted {
					return fmt.Errorf("%s already exists, use --force to overwrite", file)
				}
			}

			out, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err = renderJSON(out, snapshot); err != nil {
				_ = out.Close()
				return err
			}
			if err = out.Close(); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			cmd.Printf("Exported %d activities to %s\n", len(snapshot.Activities), file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file without asking")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/greenops"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// formatCarbon formats kg CO2 at output.precision decimals.
func formatCarbon(kg float64) string {
	return greenops.FormatFloat(kg, config.GetOutputPrecision())
}

// addOutputFlag registers --output on cmd. An empty value means the
// configured default.
func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "output", "o", "",
		"output format: table, json or ndjson (default from output.default_format)")
}

// resolveFormat applies the configured default and validates the result.
func resolveFormat(flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderNDJSON writes each item as one JSON line.
func renderNDJSON[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling row: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// renderStructured handles the json and ndjson formats. It reports false
// for table output, which the caller renders itself.
func renderStructured[T any](w io.Writer, format string, whole any, rows []T) (bool, error) {
	switch format {
	case config.FormatJSON:
		return true, renderJSON(w, whole)
	case config.FormatNDJSON:
		return true, renderNDJSON(w, rows)
	default:
		return false, nil
	}
}

// newTable returns a tabwriter with the header row and separator written.
func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	seps := make([]string, len(headers))
	for i, h := range headers {
		seps[i] = strings.Repeat("-", len(h))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	_, _ = fmt.Fprintln(tw, strings.Join(seps, "\t"))
	return tw
}

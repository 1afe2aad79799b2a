package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes").
	Accepted bool
	// Cancelled is true if reading input failed.
	Cancelled bool
}

// ConfirmOverwrite asks whether an existing file may be replaced.
// The prompt defaults to "No" when the user presses Enter without input.
func ConfirmOverwrite(writer io.Writer, reader io.Reader, path string) PromptResult {
	fmt.Fprintf(writer, "? %s already exists. Overwrite it? [y/N] ", path)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF (Ctrl+D) declines.
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}

// confirmOverwriteWithStdin prompts on stdin. Non-interactive sessions are
// never prompted and always decline.
func confirmOverwriteWithStdin(writer io.Writer, path string) PromptResult {
	if !isTerminal(os.Stdin) {
		return PromptResult{}
	}
	return ConfirmOverwrite(writer, os.Stdin, path)
}

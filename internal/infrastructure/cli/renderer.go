package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

// RenderResponse prints the response in a friendly, ASCII-only format, or as
// JSON when requested.
func RenderResponse(out io.Writer, resp domain.Response, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(out, "{\"error\": %q}\n", err.Error())
		}
		return
	}

	if resp.Command != nil {
		fmt.Fprintf(out, "Command: %s\n", resp.Command.String())
	}

	if resp.ExecutionResult != nil {
		if stdout := strings.TrimSpace(resp.ExecutionResult.Stdout); stdout != "" {
			fmt.Fprintln(out, stdout)
		}
		if !resp.ExecutionResult.Success {
			if stderr := strings.TrimSpace(resp.ExecutionResult.Stderr); stderr != "" {
				fmt.Fprintln(out, stderr)
			}
		}
	}

	fmt.Fprintln(out, resp.Message.Text)
	if resp.Message.Suggestion != "" {
		fmt.Fprintln(out, resp.Message.Suggestion)
	}
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Enabled indicates the prompter is interactive.
func (p *Prompter) Enabled() bool {
	return true
}

// Confirm asks the user to approve a destructive command.
func (p *Prompter) Confirm(cmd domain.Command, reasons []string) (bool, error) {
	fmt.Fprintln(p.out, "\nThis will change installed software:")
	fmt.Fprintf(p.out, "  %s\n", cmd.String())
	for _, reason := range reasons {
		if reason != "" {
			fmt.Fprintf(p.out, " - %s\n", reason)
		}
	}

	fmt.Fprint(p.out, "Continue? [y/N]: ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/luminous-dynamics/ask-nix/internal/app"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/cli/commands"
	"github.com/luminous-dynamics/ask-nix/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// ExitError carries a contract exit code out of cobra. The main package maps
// it to the process exit status.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// NewRootCmd wires the cobra root command. The root itself runs the
// natural-language pipeline so `ask-nix "install firefox"` works without a
// subcommand.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.AskService.Prompter = NewPrompter(nil, nil)

	var (
		dryRun     bool
		jsonOutput bool
		system     bool
		assumeYes  bool
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:     "ask-nix [request]",
		Short:   "ask-nix - natural language interface for Nix",
		Long:    "ask-nix turns plain English like \"install firefox\" into safe, validated Nix commands.",
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// Drains the learning queue even when the pipeline exits non-zero.
			defer container.Close()
			req := domain.Request{
				Context:   cmd.Context(),
				Text:      strings.Join(args, " "),
				DryRun:    dryRun,
				System:    system,
				AssumeYes: assumeYes,
				Timeout:   timeout,
			}
			resp, err := container.AskService.Run(req)
			if err != nil {
				return err
			}
			RenderResponse(cmd.OutOrStdout(), resp, jsonOutput)
			if resp.Message.ExitCode != domain.ExitSuccess {
				return &ExitError{Code: resp.Message.ExitCode, Message: resp.Message.Text}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview the command without changing the system")
	root.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full response as JSON")
	root.Flags().BoolVar(&system, "system", false, "Operate on the system profile (nixos-rebuild)")
	root.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation for destructive commands")
	root.Flags().DurationVar(&timeout, "timeout", 0, "Override command timeout (default from config)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return &ExitError{Code: domain.ExitInvalidArguments, Message: err.Error()}
	})

	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewSafetyCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

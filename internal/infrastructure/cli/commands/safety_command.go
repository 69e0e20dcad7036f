package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luminous-dynamics/ask-nix/internal/app"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

// NewSafetyCommand creates the safety command with list/test subcommands.
func NewSafetyCommand(container *app.Container) *cobra.Command {
	safetyCmd := &cobra.Command{
		Use:   "safety",
		Short: "Inspect the command validator",
	}

	safetyCmd.AddCommand(
		newSafetyListCommand(container),
		newSafetyTestCommand(container),
	)

	return safetyCmd
}

func newSafetyListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active deny rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, rule := range container.Gate.Rules() {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n  %s\n", rule.Level, rule.Pattern, rule.Message)
			}
			return nil
		},
	}
}

func newSafetyTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <program> [args...]",
		Short: "Check whether a command would be allowed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			probe := domain.Command{Program: args[0], Args: args[1:]}
			if err := container.Gate.Check(probe); err != nil {
				if blocked, ok := domain.AsBlocked(err); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "BLOCKED (%s): %s\n", blocked.Rule, blocked.Reason)
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ALLOWED")
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luminous-dynamics/ask-nix/internal/app"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand(container *app.Container) *cobra.Command {
	var refreshIndex bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return fmt.Errorf(ErrDoctorUnavailable)
			}

			if refreshIndex {
				if err := container.DoctorService.RefreshIndex(cmd.Context()); err != nil {
					return fmt.Errorf("package index refresh failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Package index refreshed.")
			}

			report, err := container.DoctorService.Run(cmd.Context())
			displayDoctorReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refreshIndex, "refresh-index", false, "Rebuild the package name index from the channel")
	return cmd
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}

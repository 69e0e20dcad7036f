package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/luminous-dynamics/ask-nix/internal/app"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded interactions",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryPruneCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(container)
			if err != nil {
				return err
			}
			records, err := store.Recent(limit)
			if err != nil {
				return fmt.Errorf("failed to retrieve history: %w", err)
			}
			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search interactions for a package or intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf(ErrQueryRequired)
			}
			store, err := requireStore(container)
			if err != nil {
				return err
			}
			records, err := store.Search(query, searchLimit)
			if err != nil {
				return fmt.Errorf("failed to search history: %w", err)
			}
			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			return nil
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export interactions to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(container)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			return nil
		},
	}
}

func newHistoryPruneCommand(container *app.Container) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete interactions older than N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf(ErrInvalidPruneDays)
			}
			store, err := requireStore(container)
			if err != nil {
				return err
			}
			removed, err := store.Prune(time.Duration(days) * 24 * time.Hour)
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries older than %d days.\n", removed, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", domain.DefaultRetentionDays, "Days to retain")
	return cmd
}

func requireStore(container *app.Container) (ports.LearningStore, error) {
	if container.Store == nil {
		return nil, fmt.Errorf(ErrLearningStoreUnavailable)
	}
	return container.Store, nil
}

func printRecords(out io.Writer, records []domain.LearningRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s %s | %s\n",
			humanize.Time(rec.Timestamp),
			rec.IntentType,
			rec.Entity,
			rec.Outcome)
	}
}

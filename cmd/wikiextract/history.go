package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/nao1215/wikiextract/internal/database"
	"github.com/nao1215/wikiextract/internal/model"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit bounds the listing so a long-lived database stays
// readable.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded processing runs",
		Long: `History lists the parse, clean, and export runs recorded in the run
database, most recent first.

Runs are recorded automatically unless --no-history was given. The
database lives in the XDG data directory.

Examples:
  # Show the most recent runs
  wikiextract history

  # Show only parse runs over one corpus file
  wikiextract history --command parse --input data/wiki_sample.parquet

  # List the corpus files that have recorded runs
  wikiextract history --inputs`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("command", "",
		"Show only runs of this command (parse, clean, or export)")
	cmd.Flags().String("input", "",
		"Show only runs over this corpus file")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to show (0 for all)")
	cmd.Flags().Bool("inputs", false,
		"List the corpus files that have recorded runs instead")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	command, err := cmd.Flags().GetString("command")
	if err != nil {
		return err
	}

	inputFile, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	inputs, err := cmd.Flags().GetBool("inputs")
	if err != nil {
		return err
	}

	// The run database always lives in the XDG data directory
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open run database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if inputs {
		return printInputs(ctx, db, out)
	}
	return printRuns(ctx, db, out, command, inputFile, limit)
}

// printRuns lists recorded runs, most recent first.
func printRuns(ctx context.Context, db *database.RunDB, out io.Writer, command, inputFile string, limit int) error {
	runs, err := db.ListRuns(ctx, command, inputFile, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs found.")
		fmt.Fprintln(out, "\nUse 'wikiextract parse' to process a corpus file; runs are recorded automatically.")
		return nil
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-7s  %-19s  %-10s  %-7s  %s\n", "Command", "Started", "Duration", "Rows", "Input")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for _, r := range runs {
		fmt.Fprintf(out, "  %-7s  %-19s  %-10s  %-7d  %s\n",
			r.Command,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatRunDuration(r),
			r.Rows,
			r.InputFile,
		)
		if r.ErrorMessage != "" {
			fmt.Fprintf(out, "           failed: %s\n", r.ErrorMessage)
		}
	}
	fmt.Fprintln(out, "\nUse 'wikiextract history --input <path>' to filter by corpus file.")

	return nil
}

// printInputs lists the distinct corpus files with recorded runs.
func printInputs(ctx context.Context, db *database.RunDB, out io.Writer) error {
	inputs, err := db.ListInputs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list corpus files: %w", err)
	}

	if len(inputs) == 0 {
		fmt.Fprintln(out, "No recorded runs found.")
		return nil
	}

	fmt.Fprintf(out, "Corpus files with recorded runs (%d):\n\n", len(inputs))
	for _, input := range inputs {
		fmt.Fprintf(out, "  • %s\n", input)
	}
	fmt.Fprintln(out, "\nUse 'wikiextract history --input <path>' to see the runs for one file.")

	return nil
}

// formatRunDuration renders the run duration, or a dash for runs that
// never finished.
func formatRunDuration(r *model.RunRecord) string {
	if r.FinishedAt.IsZero() {
		return "-"
	}
	return r.Duration().Round(time.Millisecond).String()
}

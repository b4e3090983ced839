// Package main provides the entry point for the wikiextract CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errReported signals that the command already printed its message to
// stdout. Execute exits non-zero without printing the error again.
var errReported = errors.New("reported")

// NewRootCmd creates the root command for wikiextract.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikiextract",
		Short: "Toolkit for the Wikipedia-versus-clone article corpus",
		Long: `wikiextract works with parquet corpus files that pair official Wikipedia
articles with their mirror-site clones.

It extracts single articles for inspection, parses raw wikitext into plain
paragraph text, cleans already-parsed text, and exports article text to
per-page files. Processing runs are recorded so they can be reviewed with
the history command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM
// so long-running commands can shut down gracefully.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

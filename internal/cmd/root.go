// Package cmd wires the rtkmine CLI together.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rtkmine",
	Short: "mine Claude Code transcripts for rtk adoption opportunities",
	Long: `rtkmine - mine Claude Code transcripts for rtk adoption opportunities
  - discover    → estimate token savings from routing shell commands through rtk
  - corrections → mine wrong→right command correction patterns`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// cliLogger returns the logger the subcommands pass down. Quiet by default;
// --verbose enables debug output on stderr.
func cliLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(correctionsCmd)
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/rtkmine/internal/config"
	"github.com/runger/rtkmine/internal/discover"
	"github.com/runger/rtkmine/internal/report"
	"github.com/runger/rtkmine/internal/sessions"
)

var (
	discoverProject string
	discoverDays    int
	discoverLimit   int
	discoverFormat  string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Estimate token savings from routing shell commands through rtk",
	Long: `Scan Claude Code session transcripts and estimate how many tokens
would have been saved if shell commands had gone through rtk.

Commands are classified against the rtk command registry, grouped by
their rtk equivalent, and ranked by cumulative estimated savings.
Measured output sizes from the transcripts are used where available;
otherwise a per-category heuristic estimates the output cost.

Examples:
  rtkmine discover                   # All projects, last 30 days
  rtkmine discover --project api     # Sessions whose project dir contains "api"
  rtkmine discover --days 7          # Only the last week
  rtkmine discover --format json     # Machine-readable output`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverProject, "project", "all", "Project directory filter (substring match, \"all\" for every project)")
	discoverCmd.Flags().IntVar(&discoverDays, "days", -1, "Trailing window in days (0 = all time, -1 = config default)")
	discoverCmd.Flags().IntVarP(&discoverLimit, "limit", "n", 0, "Maximum rows per table (0 = config default)")
	discoverCmd.Flags().StringVar(&discoverFormat, "format", "text", "Output format: text or json")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	days := discoverDays
	if days < 0 {
		days = cfg.Discover.Days
	}
	limit := discoverLimit
	if limit <= 0 {
		limit = cfg.Discover.Limit
	}

	logger := cliLogger()
	provider := sessions.NewProvider(sessions.Options{
		Root:   cfg.Sessions.Root,
		Logger: logger,
	})

	rep, err := discover.Run(cmd.Context(), provider, discover.RunOptions{
		Project:   discoverProject,
		SinceDays: days,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	switch discoverFormat {
	case "json":
		return report.WriteDiscoverJSON(os.Stdout, rep, limit)
	case "text":
		return report.WriteDiscoverText(os.Stdout, rep, limit)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", discoverFormat)
	}
}

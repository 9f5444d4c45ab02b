package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/rtkmine/internal/config"
	"github.com/runger/rtkmine/internal/correction"
	"github.com/runger/rtkmine/internal/report"
	"github.com/runger/rtkmine/internal/rules"
	"github.com/runger/rtkmine/internal/sessions"
)

var (
	correctionsProject string
	correctionsDays    int
	correctionsMinConf float64
	correctionsMinOcc  int
	correctionsFormat  string
	correctionsSave    bool
)

var correctionsCmd = &cobra.Command{
	Use:   "corrections",
	Short: "Mine wrong→right command correction patterns",
	Long: `Scan Claude Code session transcripts for correction episodes: a
failed command followed shortly by a similar command that succeeded.

Commands are normalized so the same mistake recurs across sessions,
scored by how clearly the fix maps to the failure, and deduplicated
into rules. Use --save to persist rules into the local database.

Examples:
  rtkmine corrections                      # Mine the last 30 days
  rtkmine corrections --min-confidence 0.8 # Only confident rules
  rtkmine corrections --save               # Persist mined rules
  rtkmine corrections --format json        # Machine-readable output`,
	RunE: runCorrections,
}

func init() {
	correctionsCmd.Flags().StringVar(&correctionsProject, "project", "all", "Project directory filter (substring match, \"all\" for every project)")
	correctionsCmd.Flags().IntVar(&correctionsDays, "days", -1, "Trailing window in days (0 = all time, -1 = config default)")
	correctionsCmd.Flags().Float64Var(&correctionsMinConf, "min-confidence", -1, "Minimum rule confidence (-1 = config default)")
	correctionsCmd.Flags().IntVar(&correctionsMinOcc, "min-occurrences", 0, "Minimum rule occurrences (0 = config default)")
	correctionsCmd.Flags().StringVar(&correctionsFormat, "format", "text", "Output format: text or json")
	correctionsCmd.Flags().BoolVar(&correctionsSave, "save", false, "Persist mined rules to the rules database")
}

func runCorrections(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	days := correctionsDays
	if days < 0 {
		days = cfg.Discover.Days
	}
	minConf := correctionsMinConf
	if minConf < 0 {
		minConf = cfg.Corrections.MinConfidence
	}
	minOcc := correctionsMinOcc
	if minOcc <= 0 {
		minOcc = cfg.Corrections.MinOccurrences
	}

	logger := cliLogger()
	provider := sessions.NewProvider(sessions.Options{
		Root:   cfg.Sessions.Root,
		Logger: logger,
	})

	mined, stats, err := correction.Run(cmd.Context(), provider, correction.RunOptions{
		Project:        correctionsProject,
		SinceDays:      days,
		MinConfidence:  minConf,
		MinOccurrences: minOcc,
		Window:         cfg.Corrections.Window,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("corrections: %w", err)
	}

	if correctionsSave && len(mined) > 0 {
		if err := saveRules(cmd, cfg, mined); err != nil {
			return err
		}
	}

	switch correctionsFormat {
	case "json":
		return report.WriteRulesJSON(os.Stdout, mined, stats, 0)
	case "text":
		return report.WriteRulesText(os.Stdout, mined, stats, 0)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", correctionsFormat)
	}
}

func saveRules(cmd *cobra.Command, cfg config.Config, mined []correction.Rule) error {
	store, err := rules.Open(rules.Options{
		Path:   cfg.Corrections.RulesPath,
		Logger: cliLogger(),
	})
	if err != nil {
		return fmt.Errorf("open rules database: %w", err)
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), mined); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Saved %d rules.\n", len(mined))
	return nil
}

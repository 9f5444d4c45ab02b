package correction

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/runger/rtkmine/internal/sessions"
)

const extractConcurrency = 4

// Provider yields session locators and their extracted commands.
// *sessions.Provider satisfies it; tests substitute fakes.
type Provider interface {
	DiscoverSessions(projectFilter string, sinceDays int) ([]sessions.Session, error)
	ExtractCommands(s sessions.Session) ([]sessions.ExtractedCommand, error)
}

// RunOptions are the tunables for one correction-mining run.
type RunOptions struct {
	Project        string
	SinceDays      int
	MinConfidence  float64
	MinOccurrences int
	Window         int // 0 selects the default look-ahead window
	Logger         *slog.Logger
}

// RunStats summarizes a run for reporting.
type RunStats struct {
	SessionsScanned int `json:"sessions_scanned"`
	ParseErrors     int `json:"parse_errors"`
	Candidates      int `json:"candidates"`
}

// Run mines correction rules across all matching sessions: detect per
// session, deduplicate globally, then filter by the configured thresholds.
// Sessions that fail to extract are counted and skipped.
func Run(ctx context.Context, p Provider, opts RunOptions) ([]Rule, RunStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var stats RunStats

	found, err := p.DiscoverSessions(opts.Project, opts.SinceDays)
	if err != nil {
		return nil, stats, err
	}

	type extraction struct {
		cmds []sessions.ExtractedCommand
		err  error
	}
	results := make([]extraction, len(found))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(extractConcurrency)
	for i, s := range found {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cmds, err := p.ExtractCommands(s)
			results[i] = extraction{cmds: cmds, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	detector := NewDetector(DetectorConfig{Window: opts.Window})
	var candidates []Candidate
	for i, res := range results {
		if res.err != nil {
			logger.Warn("skipping unparseable session", "session", found[i].ID, "error", res.err)
			stats.ParseErrors++
			continue
		}
		stats.SessionsScanned++
		candidates = append(candidates, detector.Detect(toExecutions(res.cmds))...)
	}
	stats.Candidates = len(candidates)

	rules := Filter(Deduplicate(candidates), opts.MinConfidence, opts.MinOccurrences)
	return rules, stats, nil
}

// toExecutions adapts provider records to the detector's input shape.
func toExecutions(cmds []sessions.ExtractedCommand) []CommandExecution {
	out := make([]CommandExecution, len(cmds))
	for i, c := range cmds {
		out[i] = CommandExecution{
			Command: c.Command,
			IsError: c.IsError,
			Output:  c.Output,
		}
	}
	return out
}

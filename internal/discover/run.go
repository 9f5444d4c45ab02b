package discover

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/runger/rtkmine/internal/sessions"
)

// extractConcurrency bounds parallel transcript parsing. Parsing is
// I/O-plus-decode work; a small fan-out keeps memory bounded on large
// transcript sets.
const extractConcurrency = 4

// Provider yields session locators and their extracted commands.
// *sessions.Provider satisfies it; tests substitute fakes.
type Provider interface {
	DiscoverSessions(projectFilter string, sinceDays int) ([]sessions.Session, error)
	ExtractCommands(s sessions.Session) ([]sessions.ExtractedCommand, error)
}

// RunOptions are the tunables for one discovery run.
type RunOptions struct {
	Project   string // "" or "all" for every project
	SinceDays int    // 0 for unbounded
	Logger    *slog.Logger
}

// Run discovers sessions, extracts their commands in parallel, and
// aggregates sequentially in session order so tie-breaking stays
// reproducible. A session that fails to extract is counted as a parse error
// and skipped; only session discovery itself can fail the run.
func Run(ctx context.Context, p Provider, opts RunOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	found, err := p.DiscoverSessions(opts.Project, opts.SinceDays)
	if err != nil {
		return nil, err
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
		return nil, err
	}

	agg := NewAggregator()
	for i, res := range results {
		if res.err != nil {
			logger.Warn("skipping unparseable session", "session", found[i].ID, "error", res.err)
			agg.AddParseError()
			continue
		}
		agg.AddSession(res.cmds)
	}

	return agg.Report(opts.SinceDays), nil
}

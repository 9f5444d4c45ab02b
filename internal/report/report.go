// Package report renders discovery and correction results as human-readable
// text or machine-readable JSON. Both renderings carry the same information;
// only the shape differs.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"

	"github.com/runger/rtkmine/internal/correction"
	"github.com/runger/rtkmine/internal/discover"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// WriteDiscoverText renders a discovery report for terminals. limit caps the
// rows of each table; <= 0 means unlimited.
func WriteDiscoverText(w io.Writer, r *discover.Report, limit int) error {
	if r.SessionsScanned == 0 && r.ParseErrors == 0 {
		fmt.Fprintln(w, "No sessions found. Run some Claude Code sessions first, or widen the time window with --days.")
		return nil
	}

	window := "all time"
	if r.WindowDays > 0 {
		window = fmt.Sprintf("last %d days", r.WindowDays)
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("rtk savings discovery — %s", window)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Sessions scanned:   %s\n", humanize.Comma(int64(r.SessionsScanned)))
	fmt.Fprintf(w, "  Commands seen:      %s\n", humanize.Comma(int64(r.TotalCommands)))
	if r.TotalCommands > 0 {
		pct := float64(r.AlreadyRTK) / float64(r.TotalCommands) * 100
		fmt.Fprintf(w, "  Already using rtk:  %s (%.1f%%)\n", humanize.Comma(int64(r.AlreadyRTK)), pct)
	} else {
		fmt.Fprintf(w, "  Already using rtk:  %s\n", humanize.Comma(int64(r.AlreadyRTK)))
	}
	if r.ParseErrors > 0 {
		fmt.Fprintf(w, "  Parse errors:       %s %s\n",
			humanize.Comma(int64(r.ParseErrors)), dimStyle.Render("(sessions skipped)"))
	}

	if r.TotalCommands == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No shell commands found in the scanned sessions.")
		return nil
	}

	fmt.Fprintf(w, "  Estimated saveable: %s tokens\n", humanize.Comma(int64(r.TotalSaveableTokens())))
	fmt.Fprintln(w)

	if len(r.Supported) > 0 {
		fmt.Fprintln(w, headerStyle.Render("Supported commands (by estimated savings)"))
		for _, e := range capSupported(r.Supported, limit) {
			fmt.Fprintf(w, "  %-20s %5dx  ~%s tokens  %s\n",
				e.RTKEquivalent, e.Count,
				humanize.Comma(int64(e.EstimatedSavingsTokens)),
				dimStyle.Render(fmt.Sprintf("e.g. %s [%s]", e.DisplayCommand, e.Status)))
		}
		fmt.Fprintln(w)
	}

	if len(r.Unsupported) > 0 {
		fmt.Fprintln(w, headerStyle.Render("Unsupported commands (by count)"))
		for _, e := range capUnsupported(r.Unsupported, limit) {
			fmt.Fprintf(w, "  %-20s %5dx  %s\n",
				e.BaseCommand, e.Count, dimStyle.Render("e.g. "+e.Example))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// discoverJSON wraps the report with the derived total so consumers do not
// have to recompute it.
type discoverJSON struct {
	*discover.Report
	TotalSaveableTokens int `json:"total_saveable_tokens"`
}

// WriteDiscoverJSON renders the same report as indented JSON.
func WriteDiscoverJSON(w io.Writer, r *discover.Report, limit int) error {
	capped := *r
	capped.Supported = capSupported(r.Supported, limit)
	capped.Unsupported = capUnsupported(r.Unsupported, limit)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(discoverJSON{
		Report:              &capped,
		TotalSaveableTokens: r.TotalSaveableTokens(),
	})
}

// WriteRulesText renders mined correction rules for terminals.
func WriteRulesText(w io.Writer, rls []correction.Rule, stats correction.RunStats, limit int) error {
	if stats.SessionsScanned == 0 && stats.ParseErrors == 0 {
		fmt.Fprintln(w, "No sessions found. Run some Claude Code sessions first, or widen the time window with --days.")
		return nil
	}
	if len(rls) == 0 {
		fmt.Fprintf(w, "No correction patterns found in %d sessions.\n", stats.SessionsScanned)
		if stats.Candidates > 0 {
			fmt.Fprintf(w, "%d candidate episodes were below the configured thresholds.\n", stats.Candidates)
		}
		return nil
	}

	fmt.Fprintln(w, titleStyle.Render("Correction patterns"))
	fmt.Fprintf(w, "%s\n\n", dimStyle.Render(fmt.Sprintf(
		"%d rules from %d candidates across %d sessions (%d parse errors)",
		len(rls), stats.Candidates, stats.SessionsScanned, stats.ParseErrors)))

	for _, r := range sortRules(rls, limit) {
		fmt.Fprintf(w, "  %s  %s\n", r.WrongPattern, dimStyle.Render("(wrong)"))
		fmt.Fprintf(w, "  %s  %s\n", r.RightPattern, dimStyle.Render("(right)"))
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf(
			"%s error · seen %dx · confidence %.2f", r.ErrorType, r.Occurrences, r.Confidence)))
	}
	return nil
}

// rulesJSON is the structured rendering of a corrections run.
type rulesJSON struct {
	Stats correction.RunStats `json:"stats"`
	Rules []correction.Rule   `json:"rules"`
}

// WriteRulesJSON renders mined correction rules as indented JSON.
func WriteRulesJSON(w io.Writer, rls []correction.Rule, stats correction.RunStats, limit int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rulesJSON{
		Stats: stats,
		Rules: sortRules(rls, limit),
	})
}

// sortRules orders rules strongest-first (occurrences, then confidence) and
// applies the display limit. The input slice is not modified.
func sortRules(rls []correction.Rule, limit int) []correction.Rule {
	out := make([]correction.Rule, len(rls))
	copy(out, rls)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Confidence > out[j].Confidence
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func capSupported(entries []discover.SupportedEntry, limit int) []discover.SupportedEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func capUnsupported(entries []discover.UnsupportedEntry, limit int) []discover.UnsupportedEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// Package discover aggregates mined shell commands into a ranked
// token-savings report: for every command class rtk supports, how often it
// was run raw and how many output tokens the wrapper would have saved.
package discover

import (
	"sort"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/runger/rtkmine/internal/chain"
	"github.com/runger/rtkmine/internal/classify"
	"github.com/runger/rtkmine/internal/estimate"
	"github.com/runger/rtkmine/internal/sessions"
)

// displayWidth is the column budget for example commands in reports.
const displayWidth = 60

// SupportedEntry is one ranked row of the supported table.
type SupportedEntry struct {
	RTKEquivalent          string          `json:"rtk_equivalent"`
	Category               string          `json:"category"`
	Count                  int             `json:"count"`
	DisplayCommand         string          `json:"display_command"`
	Status                 classify.Status `json:"status"`
	SavingsPct             float64         `json:"savings_pct"`
	EstimatedSavingsTokens int             `json:"estimated_savings_tokens"`
}

// UnsupportedEntry is one ranked row of the unsupported table.
type UnsupportedEntry struct {
	BaseCommand string `json:"base_command"`
	Count       int    `json:"count"`
	Example     string `json:"example"`
}

// Report is the final discovery result.
type Report struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	WindowDays      int                `json:"window_days"` // 0 means unbounded
	SessionsScanned int                `json:"sessions_scanned"`
	TotalCommands   int                `json:"total_commands"`
	AlreadyRTK      int                `json:"already_rtk"`
	ParseErrors     int                `json:"parse_errors"`
	Supported       []SupportedEntry   `json:"supported"`
	Unsupported     []UnsupportedEntry `json:"unsupported"`
}

// TotalSaveableTokens sums estimated savings across all supported entries.
func (r *Report) TotalSaveableTokens() int {
	total := 0
	for _, e := range r.Supported {
		total += e.EstimatedSavingsTokens
	}
	return total
}

// displayKey identifies one (truncated command, status) pair in a bucket's
// frequency table.
type displayKey struct {
	command string
	status  classify.Status
}

type supportedBucket struct {
	equivalent    string
	category      string
	savingsPct    float64
	count         int
	savingsTokens float64
	displayFreq   map[displayKey]int
	displaySeen   map[displayKey]int // key -> first-seen sequence, for tie-breaks
	nextSeen      int
}

type unsupportedBucket struct {
	baseCommand string
	count       int
	example     string // first encountered literal, never overwritten
}

// Aggregator accumulates classified commands across sessions. Not safe for
// concurrent use; callers aggregate sequentially and parallelize extraction
// instead.
type Aggregator struct {
	supported    map[string]*supportedBucket
	supportedKey []string // insertion order, for stable tie-breaks
	unsupported  map[string]*unsupportedBucket
	unsupKey     []string

	sessionsScanned int
	totalCommands   int
	alreadyRTK      int
	parseErrors     int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		supported:   make(map[string]*supportedBucket),
		unsupported: make(map[string]*unsupportedBucket),
	}
}

// AddSession feeds one session's extracted commands through the chain
// splitter, classifier, and estimator.
func (a *Aggregator) AddSession(cmds []sessions.ExtractedCommand) {
	a.sessionsScanned++
	for _, cmd := range cmds {
		parts := chain.Split(cmd.Command)
		for _, part := range parts {
			a.addAtomic(part, cmd, len(parts))
		}
	}
}

// AddParseError records a session that could not be parsed. The session is
// skipped; the batch continues.
func (a *Aggregator) AddParseError() {
	a.parseErrors++
}

func (a *Aggregator) addAtomic(part string, src sessions.ExtractedCommand, chainLen int) {
	a.totalCommands++

	c := classify.Classify(part)
	switch c.Kind {
	case classify.KindSupported:
		a.addSupported(part, c, src, chainLen)
	case classify.KindUnsupported:
		a.addUnsupported(part, c.BaseCommand)
	case classify.KindIgnored:
		if classify.IsWrapperInvocation(part) {
			a.alreadyRTK++
		}
	}
}

func (a *Aggregator) addSupported(part string, c classify.Classification, src sessions.ExtractedCommand, chainLen int) {
	b, ok := a.supported[c.RTKEquivalent]
	if !ok {
		b = &supportedBucket{
			equivalent:  c.RTKEquivalent,
			category:    c.Category,
			savingsPct:  c.SavingsPct,
			displayFreq: make(map[displayKey]int),
			displaySeen: make(map[displayKey]int),
		}
		a.supported[c.RTKEquivalent] = b
		a.supportedKey = append(a.supportedKey, c.RTKEquivalent)
	}

	b.count++
	tokens := a.outputTokens(part, c.Category, src, chainLen)
	b.savingsTokens += float64(tokens) * c.SavingsPct / 100

	key := displayKey{command: truncateDisplay(part), status: c.Status}
	if _, seen := b.displaySeen[key]; !seen {
		b.displaySeen[key] = b.nextSeen
		b.nextSeen++
	}
	b.displayFreq[key]++
}

// outputTokens picks the estimation tier for one atomic command. Measured
// sizes describe the whole chain's combined output, so they are only
// trusted for single-command chains; compound commands fall back to the
// heuristic to avoid attributing one command's output to every part.
func (a *Aggregator) outputTokens(part, category string, src sessions.ExtractedCommand, chainLen int) int {
	if chainLen == 1 {
		if src.Output != "" {
			return estimate.TokensForContent(src.Output)
		}
		if src.HasOutputLen {
			return estimate.Tokens(category, estimate.Subcommand(part), src.OutputLen, true)
		}
	}
	return estimate.Tokens(category, estimate.Subcommand(part), 0, false)
}

func (a *Aggregator) addUnsupported(part, base string) {
	b, ok := a.unsupported[base]
	if !ok {
		b = &unsupportedBucket{baseCommand: base, example: truncateDisplay(part)}
		a.unsupported[base] = b
		a.unsupKey = append(a.unsupKey, base)
	}
	b.count++
}

// Report finalizes the accumulated buckets into a sorted report.
func (a *Aggregator) Report(windowDays int) *Report {
	r := &Report{
		GeneratedAt:     time.Now(),
		WindowDays:      windowDays,
		SessionsScanned: a.sessionsScanned,
		TotalCommands:   a.totalCommands,
		AlreadyRTK:      a.alreadyRTK,
		ParseErrors:     a.parseErrors,
	}

	for _, key := range a.supportedKey {
		b := a.supported[key]
		display, status := b.representative()
		r.Supported = append(r.Supported, SupportedEntry{
			RTKEquivalent:          b.equivalent,
			Category:               b.category,
			Count:                  b.count,
			DisplayCommand:         display,
			Status:                 status,
			SavingsPct:             b.savingsPct,
			EstimatedSavingsTokens: int(b.savingsTokens),
		})
	}
	sort.SliceStable(r.Supported, func(i, j int) bool {
		return r.Supported[i].EstimatedSavingsTokens > r.Supported[j].EstimatedSavingsTokens
	})

	for _, key := range a.unsupKey {
		b := a.unsupported[key]
		r.Unsupported = append(r.Unsupported, UnsupportedEntry{
			BaseCommand: b.baseCommand,
			Count:       b.count,
			Example:     b.example,
		})
	}
	sort.SliceStable(r.Unsupported, func(i, j int) bool {
		return r.Unsupported[i].Count > r.Unsupported[j].Count
	})

	return r
}

// representative picks the most frequent (display, status) pair via an
// explicit accumulator pass; ties go to the first-seen pair so the result
// does not depend on map iteration order.
func (b *supportedBucket) representative() (string, classify.Status) {
	var (
		best     displayKey
		bestFreq = -1
		bestSeen = 1 << 30
	)
	for key, freq := range b.displayFreq {
		seen := b.displaySeen[key]
		if freq > bestFreq || (freq == bestFreq && seen < bestSeen) {
			best = key
			bestFreq = freq
			bestSeen = seen
		}
	}
	return best.command, best.status
}

func truncateDisplay(cmd string) string {
	return runewidth.Truncate(cmd, displayWidth, "…")
}

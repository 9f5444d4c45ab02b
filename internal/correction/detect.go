package correction

import (
	"strings"

	"github.com/runger/rtkmine/internal/classify"
	"github.com/runger/rtkmine/internal/normalize"
)

// CommandExecution is one recorded invocation in session-chronological
// order: the command line, whether the tool reported it as an error, and the
// captured output text.
type CommandExecution struct {
	Command string
	IsError bool
	Output  string
}

// Candidate is one detected correction episode.
type Candidate struct {
	WrongPattern string
	RightPattern string
	ErrorType    ErrorKind
	Confidence   float64
	BaseCommand  string
}

// DetectorConfig holds the detector's tunable parameters.
type DetectorConfig struct {
	// Window is how many subsequent commands are scanned for a fix after a
	// failure. Corrections in real transcripts land almost immediately — the
	// user reads the error and reissues — so a small window keeps false
	// pairings down without hurting recall.
	Window int
}

// DefaultDetectorConfig returns the default detector configuration.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{Window: 3}
}

// Confidence weights. Tuned so an explicit failure followed immediately by a
// flags-only change scores 0.9 and an inferred failure fixed at the edge of
// the window still clears zero.
const (
	confidenceBase     = 0.5
	explicitErrorBonus = 0.2
	smallDiffBonus     = 0.2
	distancePenalty    = 0.1
)

// Detector finds correction episodes within single sessions.
type Detector struct {
	cfg DetectorConfig
}

// NewDetector creates a detector. A zero or negative window falls back to
// the default.
func NewDetector(cfg DetectorConfig) *Detector {
	if cfg.Window <= 0 {
		cfg.Window = DefaultDetectorConfig().Window
	}
	return &Detector{cfg: cfg}
}

// Detect scans one session's chronological command sequence and returns the
// correction candidates found. Sessions are independent; no state carries
// across calls.
func (d *Detector) Detect(cmds []CommandExecution) []Candidate {
	var candidates []Candidate

	for i := range cmds {
		kind, explicit, failed := failureOf(cmds[i])
		if !failed {
			continue
		}
		base := classify.BaseCommand(cmds[i].Command)
		if base == "" {
			continue
		}

		wrong := normalize.Pattern(cmds[i].Command)
		if wrong == "" {
			continue
		}

		limit := i + d.cfg.Window
		if limit >= len(cmds) {
			limit = len(cmds) - 1
		}
		for j := i + 1; j <= limit; j++ {
			if _, _, alsoFailed := failureOf(cmds[j]); alsoFailed {
				continue
			}
			if classify.BaseCommand(cmds[j].Command) != base {
				continue
			}
			right := normalize.Pattern(cmds[j].Command)
			if right == "" || right == wrong {
				// Identical pattern is a bare retry, not a correction;
				// keep scanning in case a real variant follows.
				continue
			}

			candidates = append(candidates, Candidate{
				WrongPattern: wrong,
				RightPattern: right,
				ErrorType:    kind,
				Confidence:   scoreConfidence(wrong, right, j-i, explicit),
				BaseCommand:  base,
			})
			break
		}
	}

	return candidates
}

// failureOf decides whether a command counts as failed. An explicit IsError
// flag wins; otherwise the output is scanned for failure signatures.
// Returns the error kind, whether the failure was explicit, and whether the
// command failed at all.
func failureOf(c CommandExecution) (kind ErrorKind, explicit, failed bool) {
	kind, matched := classifyOutput(c.Output)
	if c.IsError {
		return kind, true, true
	}
	return kind, false, matched
}

// scoreConfidence computes the confidence for one episode.
//
//   - closer fixes score higher (distance 1 carries no penalty)
//   - a flags/arguments-only change scores higher than a rewritten invocation
//   - an explicit error flag scores higher than an inferred failure
func scoreConfidence(wrong, right string, distance int, explicit bool) float64 {
	score := confidenceBase
	if explicit {
		score += explicitErrorBonus
	}
	if sameInvocationHead(wrong, right) {
		score += smallDiffBonus
	}
	score -= distancePenalty * float64(distance-1)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// sameInvocationHead reports whether two normalized patterns share their
// leading non-flag tokens — the tool and subcommand — meaning only flags or
// arguments changed between them.
func sameInvocationHead(wrong, right string) bool {
	return invocationHead(wrong) == invocationHead(right)
}

// invocationHead returns the first two tokens of a pattern, stopping early
// at the first flag or placeholder.
func invocationHead(pattern string) string {
	fields := strings.Fields(pattern)
	head := make([]string, 0, 2)
	for _, f := range fields {
		if strings.HasPrefix(f, "-") || strings.HasPrefix(f, "<") {
			break
		}
		head = append(head, f)
		if len(head) == 2 {
			break
		}
	}
	return strings.Join(head, " ")
}

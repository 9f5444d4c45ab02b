// Package estimate provides output-token volume estimation for shell
// commands mined from session transcripts.
//
// Three tiers, most precise first: a captured output body is tokenized
// directly; a captured byte count is divided by the empirical bytes-per-token
// ratio; otherwise a static average table keyed by (category, subcommand)
// supplies a historically observed figure. The function never fails and
// never returns zero for a real command.
package estimate

import (
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// BytesPerToken is the empirical byte-to-token divisor for typical terminal
// output (mostly ASCII).
const BytesPerToken = 4

// DefaultAvgTokens is the conservative fallback for an unknown
// (category, subcommand) pair. Deliberately nonzero: an unknown command that
// produced output we never measured still costs tokens, and counting it as
// free would understate every report built on top of this estimate.
const DefaultAvgTokens = 150

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
)

// TokensForContent counts the tokens in a captured output body. If the
// tokenizer cannot be initialized the byte-ratio estimate is used instead.
func TokensForContent(content string) int {
	codecOnce.Do(func() {
		codec, _ = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if codec != nil {
		if n, err := codec.Count(content); err == nil {
			return n
		}
	}
	return TokensForLength(len(content))
}

// TokensForLength converts a measured output byte count to tokens.
func TokensForLength(outputLen int) int {
	if outputLen <= 0 {
		return 0
	}
	n := outputLen / BytesPerToken
	if n == 0 {
		n = 1
	}
	return n
}

// Tokens estimates the output token volume of one command. realOutputLen is
// the measured byte count when the provider captured it; hasRealLen false
// selects the heuristic table. subcommand is the second whitespace-delimited
// token of the command, or "" if none.
func Tokens(category, subcommand string, realOutputLen int, hasRealLen bool) int {
	if hasRealLen {
		return TokensForLength(realOutputLen)
	}
	return avgTokens(category, subcommand)
}

// Subcommand extracts the second whitespace-delimited token of a command
// string for table lookup, or "" if the command has no second token.
func Subcommand(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func avgTokens(category, subcommand string) int {
	subs, ok := avgTokenTable[category]
	if !ok {
		return DefaultAvgTokens
	}
	if n, ok := subs[subcommand]; ok {
		return n
	}
	if n, ok := subs[""]; ok {
		return n
	}
	return DefaultAvgTokens
}

// avgTokenTable holds average observed output token counts per
// (category, subcommand). The "" subcommand row is the category default.
// Figures come from eyeballing real transcript corpora; they only need to be
// the right order of magnitude since the precise path is preferred whenever
// a measured length is available.
var avgTokenTable = map[string]map[string]int{
	"vcs": {
		"status": 250,
		"diff":   900,
		"log":    1400,
		"show":   800,
		"":       300,
	},
	"files": {
		"": 350,
	},
	"search": {
		"": 600,
	},
	"test": {
		"": 2200,
	},
	"build": {
		"": 1600,
	},
	"lint": {
		"": 900,
	},
	"packages": {
		"install": 1100,
		"":        800,
	},
	"containers": {
		"": 700,
	},
	"logs": {
		"": 2500,
	},
	"json": {
		"": 800,
	},
	"network": {
		"": 500,
	},
}

// Package normalize abstracts volatile arguments out of command strings so
// that correction episodes recorded in different sessions group together.
//
// "npm run build /Users/a/proj" and "npm run build /home/b/work" describe the
// same correction pattern; the paths, numbers, hashes, and URLs they differ
// in are replaced with typed placeholders. Stable tokens — the command, its
// subcommands, and flags — are kept verbatim. Normalization is deterministic
// and idempotent: normalizing an already-normalized pattern is a no-op.
package normalize

import (
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Placeholder tokens for volatile argument classes.
const (
	PlaceholderPath = "<path>"
	PlaceholderNum  = "<num>"
	PlaceholderSHA  = "<sha>"
	PlaceholderURL  = "<url>"
	PlaceholderUUID = "<uuid>"
)

var (
	numPattern  = regexp.MustCompile(`^\d+$`)
	shaPattern  = regexp.MustCompile(`(?i)^[0-9a-f]{7,40}$`)
	urlPattern  = regexp.MustCompile(`^(?:https?://|git@[^:]+:)`)
	uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// Pattern returns the normalized form of a command: whitespace collapsed,
// volatile arguments replaced by placeholders, everything else preserved in
// order.
func Pattern(cmd string) string {
	tokens := tokenize(cmd)
	if len(tokens) == 0 {
		return ""
	}

	out := make([]string, 0, len(tokens))
	out = append(out, tokens[0])
	for _, tok := range tokens[1:] {
		out = append(out, normalizeToken(tok))
	}
	return strings.Join(out, " ")
}

// tokenize splits on shell syntax, falling back to whitespace fields when
// the input is not valid shell (unterminated quotes and the like).
func tokenize(cmd string) []string {
	tokens, err := shlex.Split(cmd)
	if err == nil && len(tokens) > 0 {
		return tokens
	}
	return strings.Fields(cmd)
}

func normalizeToken(tok string) string {
	// Flags are stable: they are usually the very thing a correction fixes.
	if strings.HasPrefix(tok, "-") {
		return tok
	}
	if isPlaceholder(tok) {
		return tok
	}
	switch {
	case uuidPattern.MatchString(tok):
		return PlaceholderUUID
	case shaPattern.MatchString(tok):
		return PlaceholderSHA
	case urlPattern.MatchString(tok):
		return PlaceholderURL
	case isPathLike(tok):
		return PlaceholderPath
	case numPattern.MatchString(tok):
		return PlaceholderNum
	}
	return tok
}

func isPlaceholder(tok string) bool {
	switch tok {
	case PlaceholderPath, PlaceholderNum, PlaceholderSHA, PlaceholderURL, PlaceholderUUID:
		return true
	}
	return false
}

// isPathLike reports whether a token looks like a filesystem path.
// Conservative: a bare filename without a separator is kept as-is, since
// names like "Makefile" or "main.go" are often the stable part of a pattern.
func isPathLike(tok string) bool {
	if strings.HasPrefix(tok, "/") ||
		strings.HasPrefix(tok, "~/") ||
		strings.HasPrefix(tok, "./") ||
		strings.HasPrefix(tok, "../") {
		return true
	}

	// Windows drive letter: C:\ or C:/
	if len(tok) >= 3 && tok[1] == ':' &&
		((tok[0] >= 'a' && tok[0] <= 'z') || (tok[0] >= 'A' && tok[0] <= 'Z')) &&
		(tok[2] == '/' || tok[2] == '\\') {
		return true
	}

	return strings.Contains(tok, "/")
}

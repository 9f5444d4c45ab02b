// Package chain decomposes raw shell command lines into their atomic
// sub-invocations. Commands recorded in session transcripts are frequently
// compound ("cd pkg && go test ./... | tee out.log"); classification operates
// on the atomic parts, so splitting must respect quoting — operator
// characters inside string literals (grep "a||b") are not separators.
package chain

import "strings"

// Operator is a shell sequencing, logical, or pipe operator.
type Operator string

const (
	OpPipe      Operator = "|"
	OpAnd       Operator = "&&"
	OpOr        Operator = "||"
	OpSemicolon Operator = ";"
)

// Segment is one atomic command within a chain, plus the operator that
// follows it. The last segment carries an empty operator.
type Segment struct {
	Command  string
	Operator Operator
}

// Split returns the atomic command strings of a chain, in order. Empty and
// whitespace-only parts are dropped; input with no operators yields a single
// element.
func Split(raw string) []string {
	segs := SplitSegments(raw)
	if len(segs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, s.Command)
	}
	return parts
}

// SplitSegments splits a chain into segments, preserving the operators
// between them. Single- and double-quoted substrings and backslash escapes
// are scanned through without interpretation, so operators inside them never
// split.
func SplitSegments(raw string) []Segment {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var segments []Segment
	var current strings.Builder
	runes := []rune(raw)
	n := len(runes)
	i := 0

	flush := func(op Operator) {
		if cmd := strings.TrimSpace(current.String()); cmd != "" {
			segments = append(segments, Segment{Command: cmd, Operator: op})
		}
		current.Reset()
	}

	for i < n {
		ch := runes[i]

		if ch == '\\' && i+1 < n {
			current.WriteRune(ch)
			current.WriteRune(runes[i+1])
			i += 2
			continue
		}

		if ch == '\'' {
			i = copyQuoted(&current, runes, i, '\'', false)
			continue
		}

		if ch == '"' {
			i = copyQuoted(&current, runes, i, '"', true)
			continue
		}

		// Two-character operators before their one-character prefixes.
		if ch == '&' && i+1 < n && runes[i+1] == '&' {
			flush(OpAnd)
			i += 2
			continue
		}
		if ch == '|' && i+1 < n && runes[i+1] == '|' {
			flush(OpOr)
			i += 2
			continue
		}
		if ch == '|' {
			flush(OpPipe)
			i++
			continue
		}
		if ch == ';' {
			flush(OpSemicolon)
			i++
			continue
		}

		current.WriteRune(ch)
		i++
	}

	flush("")
	return segments
}

// copyQuoted copies a quoted substring starting at runes[start] (the opening
// quote) into b, returning the index just past the closing quote. An
// unterminated quote consumes the rest of the input, which matches how the
// shell would wait for more input — we treat the remainder as quoted text.
func copyQuoted(b *strings.Builder, runes []rune, start int, quote rune, allowEscape bool) int {
	n := len(runes)
	b.WriteRune(runes[start])
	i := start + 1
	for i < n && runes[i] != quote {
		if allowEscape && runes[i] == '\\' && i+1 < n {
			b.WriteRune(runes[i])
			b.WriteRune(runes[i+1])
			i += 2
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	if i < n {
		b.WriteRune(runes[i])
		i++
	}
	return i
}

package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens_RealLengthPreferred(t *testing.T) {
	// 4000 bytes of output / 4 bytes per token = 1000 tokens, regardless of
	// what the heuristic table would say for this category.
	assert.Equal(t, 1000, Tokens("test", "", 4000, true))
	assert.Equal(t, 1, Tokens("vcs", "status", 3, true))
	assert.Equal(t, 0, Tokens("vcs", "status", 0, true))
}

func TestTokens_FallbackTable(t *testing.T) {
	assert.Equal(t, 250, Tokens("vcs", "status", 0, false))
	assert.Equal(t, 900, Tokens("vcs", "diff", 0, false))
	// Unknown subcommand falls to the category default.
	assert.Equal(t, 300, Tokens("vcs", "fetch", 0, false))
	// Category default rows.
	assert.Equal(t, 2200, Tokens("test", "", 0, false))
	assert.Equal(t, 1100, Tokens("packages", "install", 0, false))
}

func TestTokens_UnknownCategoryNeverZero(t *testing.T) {
	got := Tokens("nonexistent-category", "whatever", 0, false)
	assert.Equal(t, DefaultAvgTokens, got)
	assert.Greater(t, got, 0)
}

func TestTokensForLength(t *testing.T) {
	assert.Equal(t, 0, TokensForLength(0))
	assert.Equal(t, 0, TokensForLength(-5))
	assert.Equal(t, 1, TokensForLength(2)) // rounds up from zero
	assert.Equal(t, 25, TokensForLength(100))
}

func TestTokensForContent(t *testing.T) {
	// Exact counts depend on the tokenizer vocabulary; assert shape only.
	assert.Equal(t, 0, TokensForContent(""))
	n := TokensForContent("error: package not found in registry")
	assert.Greater(t, n, 0)
	assert.Less(t, n, 40)
}

func TestSubcommand(t *testing.T) {
	assert.Equal(t, "status", Subcommand("git status --short"))
	assert.Equal(t, "", Subcommand("ls"))
	assert.Equal(t, "", Subcommand(""))
	assert.Equal(t, "-la", Subcommand("ls -la"))
}

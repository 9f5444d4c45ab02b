package rules

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/rtkmine/internal/correction"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "rules.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func rule(wrong, right string, conf float64, occ int) correction.Rule {
	return correction.Rule{
		WrongPattern: wrong,
		RightPattern: right,
		ErrorType:    correction.KindFlag,
		BaseCommand:  "npm",
		Confidence:   conf,
		Occurrences:  occ,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []correction.Rule{
		rule("npm run build", "npm run build --force", 0.9, 3),
		rule("git pus", "git push", 0.7, 1),
	}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Strongest first.
	assert.Equal(t, "npm run build", got[0].WrongPattern)
	assert.Equal(t, 3, got[0].Occurrences)
	assert.Equal(t, correction.KindFlag, got[0].ErrorType)
}

func TestStore_UpsertAccumulates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []correction.Rule{rule("a", "b", 0.4, 1)}))
	require.NoError(t, s.Save(ctx, []correction.Rule{rule("a", "b", 0.9, 2)}))
	require.NoError(t, s.Save(ctx, []correction.Rule{rule("a", "b", 0.5, 1)}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Occurrences)
	assert.Equal(t, 0.9, got[0].Confidence, "confidence merge keeps the maximum")
}

func TestStore_EmptyList(t *testing.T) {
	s := openTestStore(t)
	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

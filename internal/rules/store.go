// Package rules persists learned correction rules to SQLite so repeated
// mining runs accumulate evidence instead of starting cold.
package rules

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/runger/rtkmine/internal/correction"
)

const schema = `
CREATE TABLE IF NOT EXISTS correction_rule (
	id            TEXT PRIMARY KEY,
	wrong_pattern TEXT NOT NULL,
	right_pattern TEXT NOT NULL,
	error_type    TEXT NOT NULL,
	base_command  TEXT NOT NULL,
	confidence    REAL NOT NULL,
	occurrences   INTEGER NOT NULL,
	updated_ms    INTEGER NOT NULL,
	UNIQUE(wrong_pattern, right_pattern)
);
CREATE INDEX IF NOT EXISTS idx_correction_rule_base
	ON correction_rule(base_command);
`

// Store is the SQLite-backed rule store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Options configures Open.
type Options struct {
	Path   string // empty means DefaultPath
	Logger *slog.Logger
}

// DefaultPath returns ~/.rtkmine/rules.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".rtkmine", "rules.db"), nil
}

// Open opens (creating if needed) the rule database and applies the schema.
// The caller must Close.
func Open(opts Options) (*Store, error) {
	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create rules directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open rules db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply rules schema: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts mined rules. An existing (wrong, right) pair accumulates
// occurrences and keeps the maximum confidence, matching the in-memory
// deduplication semantics.
func (s *Store) Save(ctx context.Context, rules []correction.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rules tx: %w", err)
	}
	defer tx.Rollback()

	nowMs := time.Now().UnixMilli()
	for _, r := range rules {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO correction_rule
				(id, wrong_pattern, right_pattern, error_type, base_command, confidence, occurrences, updated_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(wrong_pattern, right_pattern) DO UPDATE SET
				occurrences = occurrences + excluded.occurrences,
				confidence = MAX(confidence, excluded.confidence),
				updated_ms = excluded.updated_ms
		`,
			uuid.NewString(), r.WrongPattern, r.RightPattern, string(r.ErrorType),
			r.BaseCommand, r.Confidence, r.Occurrences, nowMs,
		)
		if err != nil {
			return fmt.Errorf("upsert rule %q: %w", r.WrongPattern, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rules tx: %w", err)
	}
	s.logger.Debug("saved rules", "count", len(rules))
	return nil
}

// List returns all stored rules, strongest first (occurrences, then
// confidence).
func (s *Store) List(ctx context.Context) ([]correction.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT wrong_pattern, right_pattern, error_type, base_command, confidence, occurrences
		FROM correction_rule
		ORDER BY occurrences DESC, confidence DESC, wrong_pattern ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var out []correction.Rule
	for rows.Next() {
		var r correction.Rule
		var errorType string
		if err := rows.Scan(&r.WrongPattern, &r.RightPattern, &errorType, &r.BaseCommand, &r.Confidence, &r.Occurrences); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		r.ErrorType = correction.ErrorKind(errorType)
		out = append(out, r)
	}
	return out, rows.Err()
}

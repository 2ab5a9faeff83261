// internal/history/db.go
//
// SQLite persistence for solver history.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Recording problems and per-turn guesses; listing a problem's turns.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the SQLite database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	// Ensure directory exists for ./data/history.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// migrate applies embedded migrations in lexical order, each in its own transaction.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, "migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ----------------------------- records ---------------------------------- */

// Turn is one guess cycle of a problem.
type Turn struct {
	ID        string    `json:"id"`
	ProblemID string    `json:"problemId"`
	Turn      int       `json:"turn"`
	Feedback  string    `json:"feedback,omitempty"` // raw text received before this guess
	Letters   string    `json:"letters,omitempty"`  // interpreted b/y/g form
	Guess     string    `json:"guess"`
	Remaining int       `json:"remaining"` // secrets left when the guess was chosen
	Reset     bool      `json:"reset"`     // the secret set was reset this turn
	CreatedAt time.Time `json:"createdAt"`
}

// RecordProblem stores a new problem, replacing any earlier one with the same id
// together with its turns.
func (s *Store) RecordProblem(ctx context.Context, problemID string, candidates int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM turns WHERE problem_id=?`, problemID); err != nil {
		return fmt.Errorf("clear turns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT OR REPLACE INTO problems (id, candidate_count, started_at)
        VALUES (?, ?, ?)`,
		problemID, candidates, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert problem: %w", err)
	}
	return tx.Commit()
}

// RecordTurn appends a turn. ID and CreatedAt are filled in when empty.
func (s *Store) RecordTurn(ctx context.Context, t Turn) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO turns (id, problem_id, turn, feedback, letters, guess, remaining, reset, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProblemID, t.Turn, t.Feedback, t.Letters, t.Guess, t.Remaining, t.Reset,
		t.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Turns lists a problem's turns in the order they were recorded.
func (s *Store) Turns(ctx context.Context, problemID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, problem_id, turn, feedback, letters, guess, remaining, reset, created_at
        FROM turns
        WHERE problem_id=?
        ORDER BY rowid ASC`, problemID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Turn{}
	for rows.Next() {
		var t Turn
		var created string
		if err := rows.Scan(&t.ID, &t.ProblemID, &t.Turn, &t.Feedback, &t.Letters,
			&t.Guess, &t.Remaining, &t.Reset, &created); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("turn %s: created_at: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

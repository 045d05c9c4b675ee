package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded solve.
type Entry struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	InputHash string    `json:"input_hash" yaml:"input_hash"`
	InputPath string    `json:"input_path" yaml:"input_path"`
	Deltas    int       `json:"deltas" yaml:"deltas"`
	PartOne   int64     `json:"part_one" yaml:"part_one"`
	PartTwo   int64     `json:"part_two" yaml:"part_two"`
	Steps     int       `json:"steps" yaml:"steps"`
	Passes    int       `json:"passes" yaml:"passes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Index manages the history.db file.
type Index struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	input_hash TEXT NOT NULL,
	input_path TEXT NOT NULL,
	deltas     INTEGER NOT NULL,
	part_one   INTEGER NOT NULL,
	part_two   INTEGER NOT NULL,
	steps      INTEGER NOT NULL,
	passes     INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_input_hash ON runs(input_hash);
`

// Open opens the index at path, creating the file and schema if needed.
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init index: %w", err)
	}

	return &Index{db: db, path: path}, nil
}

// Path returns the database file path.
func (idx *Index) Path() string { return idx.path }

// Close releases the database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Add records an entry. RunID and CreatedAt are filled in when empty.
// Returns the stored entry.
func (idx *Index) Add(e Entry) (Entry, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := idx.db.Exec(`INSERT OR REPLACE INTO runs
		(run_id, input_hash, input_path, deltas, part_one, part_two, steps, passes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.InputHash, e.InputPath, e.Deltas, e.PartOne, e.PartTwo, e.Steps, e.Passes,
		e.CreatedAt.UnixMilli())
	if err != nil {
		return Entry{}, fmt.Errorf("insert run: %w", err)
	}
	return e, nil
}

// Lookup returns the newest entry recorded for an input hash.
func (idx *Index) Lookup(inputHash string) (Entry, bool, error) {
	row := idx.db.QueryRow(`SELECT `+columns+` FROM runs
		WHERE input_hash = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, inputHash)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup run: %w", err)
	}
	return e, true, nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (idx *Index) List(limit int) ([]Entry, error) {
	q := `SELECT ` + columns + ` FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := idx.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded runs.
func (idx *Index) Count() (int, error) {
	var n int
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

const columns = `run_id, input_hash, input_path, deltas, part_one, part_two, steps, passes, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var created int64
	err := s.Scan(&e.RunID, &e.InputHash, &e.InputPath, &e.Deltas,
		&e.PartOne, &e.PartTwo, &e.Steps, &e.Passes, &created)
	if err != nil {
		return Entry{}, err
	}
	e.CreatedAt = time.UnixMilli(created).UTC()
	return e, nil
}

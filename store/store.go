// Package store persists finished rounds to a SQLite database so the
// shell can show history and personal bests across sessions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const defaultLimit = 10

// migrations run once each, in order, and are recorded in _migrations.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "0001_rounds",
		sql: `CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			played_at TEXT NOT NULL,
			lexicon TEXT NOT NULL,
			letters TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			found INTEGER NOT NULL,
			total INTEGER NOT NULL,
			seconds REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS rounds_score_idx ON rounds(score DESC, played_at DESC);`,
	},
}

// RoundRecord is one finished round as stored in the database.
type RoundRecord struct {
	ID       int64
	PlayedAt time.Time
	Lexicon  string
	Letters  string
	Score    int
	MaxScore int
	Found    int
	Total    int
	Seconds  float64
}

// Store wraps the rounds database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the rounds database at path and
// brings its schema up to date.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("applied")
	}
	return nil
}

// InsertRound saves a finished round. A zero PlayedAt is stamped with
// the current time.
func (s *Store) InsertRound(ctx context.Context, r RoundRecord) error {
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rounds (played_at, lexicon, letters, score, max_score, found, total, seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlayedAt.UTC().Format(time.RFC3339), r.Lexicon, r.Letters,
		r.Score, r.MaxScore, r.Found, r.Total, r.Seconds,
	)
	return err
}

// Recent returns up to n rounds, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]RoundRecord, error) {
	return s.query(ctx, `ORDER BY played_at DESC, id DESC`, n)
}

// Best returns up to n rounds ordered by score, ties going to the most
// recent.
func (s *Store) Best(ctx context.Context, n int) ([]RoundRecord, error) {
	return s.query(ctx, `ORDER BY score DESC, played_at DESC`, n)
}

func (s *Store) query(ctx context.Context, order string, n int) ([]RoundRecord, error) {
	if n <= 0 {
		n = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, played_at, lexicon, letters, score, max_score, found, total, seconds
		FROM rounds `+order+` LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var playedAt string
		if err := rows.Scan(&r.ID, &playedAt, &r.Lexicon, &r.Letters,
			&r.Score, &r.MaxScore, &r.Found, &r.Total, &r.Seconds); err != nil {
			return nil, err
		}
		r.PlayedAt, err = time.Parse(time.RFC3339, playedAt)
		if err != nil {
			return nil, fmt.Errorf("parse played_at %q: %w", playedAt, err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

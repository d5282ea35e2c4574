// Package sqlite persists phrase model snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/textkit/prepline/pkg/prepline/store"
)

// sqliteStore implements store.Store on a single-file SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite model store at path with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS model (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	run_id TEXT NOT NULL,
	trained_at TEXT NOT NULL,
	min_count INTEGER NOT NULL,
	threshold REAL NOT NULL,
	max_vocab_size INTEGER NOT NULL,
	scoring TEXT NOT NULL,
	delimiter TEXT NOT NULL,
	min_reduce INTEGER NOT NULL,
	corpus_words INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS model_vocab (
	token TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot replaces the stored snapshot in a single transaction, so a
// reader never observes a half-written model.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM model"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM model_vocab"); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO model (id, run_id, trained_at, min_count, threshold, max_vocab_size, scoring, delimiter, min_reduce, corpus_words)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID,
		snap.TrainedAt.UTC().Format(time.RFC3339Nano),
		snap.MinCount,
		snap.Threshold,
		snap.MaxVocabSize,
		snap.Scoring,
		snap.Delimiter,
		snap.MinReduce,
		snap.CorpusWords,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO model_vocab (token, count) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for token, count := range snap.Vocab {
		if _, err := stmt.ExecContext(ctx, token, count); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored snapshot. found is false when no model has
// been saved yet.
func (s *sqliteStore) LoadSnapshot(ctx context.Context) (store.Snapshot, bool, error) {
	var snap store.Snapshot
	var trainedAt string

	err := s.db.QueryRowContext(ctx, `
SELECT run_id, trained_at, min_count, threshold, max_vocab_size, scoring, delimiter, min_reduce, corpus_words
FROM model WHERE id = 1`).Scan(
		&snap.RunID,
		&trainedAt,
		&snap.MinCount,
		&snap.Threshold,
		&snap.MaxVocabSize,
		&snap.Scoring,
		&snap.Delimiter,
		&snap.MinReduce,
		&snap.CorpusWords,
	)
	if err == sql.ErrNoRows {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, err
	}

	snap.TrainedAt, err = time.Parse(time.RFC3339Nano, trainedAt)
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("parse trained_at %q: %w", trainedAt, err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT token, count FROM model_vocab")
	if err != nil {
		return store.Snapshot{}, false, err
	}
	defer rows.Close()

	snap.Vocab = make(map[string]int64)
	for rows.Next() {
		var token string
		var count int64
		if err := rows.Scan(&token, &count); err != nil {
			return store.Snapshot{}, false, err
		}
		snap.Vocab[token] = count
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, false, err
	}

	return snap, true, nil
}

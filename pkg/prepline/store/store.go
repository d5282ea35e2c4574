// Package store defines persistence for trained phrase models.
package store

import (
	"context"
	"time"
)

// Snapshot is the full persisted state of a trained phrase model: its
// hyperparameters plus the learned unigram/bigram counts. A snapshot
// written after training reconstructs an equivalent model on load.
type Snapshot struct {
	RunID        string
	TrainedAt    time.Time
	MinCount     int
	Threshold    float64
	MaxVocabSize int
	Scoring      string
	Delimiter    string
	MinReduce    int64
	CorpusWords  int64
	Vocab        map[string]int64
}

// Store persists a single model snapshot. Saving replaces any previously
// stored snapshot atomically.
type Store interface {
	SaveSnapshot(ctx context.Context, s Snapshot) error
	LoadSnapshot(ctx context.Context) (Snapshot, bool, error)
	Close() error
}

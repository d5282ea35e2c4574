package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/textkit/prepline/pkg/prepline/store"
)

func testSnapshot() store.Snapshot {
	return store.Snapshot{
		RunID:        "01JTESTRUNID0000000000000",
		TrainedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		MinCount:     5,
		Threshold:    10.0,
		MaxVocabSize: 40000000,
		Scoring:      "default",
		Delimiter:    "_",
		MinReduce:    1,
		CorpusWords:  23,
		Vocab: map[string]int64{
			"new":      8,
			"york":     8,
			"new_york": 8,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "model.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	want := testSnapshot()
	if err := s.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, found, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !found {
		t.Fatal("Snapshot should be found after save")
	}

	if got.RunID != want.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, want.RunID)
	}
	if !got.TrainedAt.Equal(want.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", got.TrainedAt, want.TrainedAt)
	}
	if got.MinCount != want.MinCount || got.Threshold != want.Threshold ||
		got.MaxVocabSize != want.MaxVocabSize || got.Scoring != want.Scoring ||
		got.Delimiter != want.Delimiter || got.MinReduce != want.MinReduce ||
		got.CorpusWords != want.CorpusWords {
		t.Errorf("Parameters differ: got %+v, want %+v", got, want)
	}
	if len(got.Vocab) != len(want.Vocab) {
		t.Fatalf("Vocab size = %d, want %d", len(got.Vocab), len(want.Vocab))
	}
	for token, count := range want.Vocab {
		if got.Vocab[token] != count {
			t.Errorf("Vocab[%q] = %d, want %d", token, got.Vocab[token], count)
		}
	}
}

func TestLoadFromEmptyStore(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	_, found, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if found {
		t.Error("Empty store should report no snapshot")
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	first := testSnapshot()
	if err := s.SaveSnapshot(ctx, first); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	second := testSnapshot()
	second.RunID = "01JSECONDRUN0000000000000"
	second.Vocab = map[string]int64{"ice": 4, "cream": 4, "ice_cream": 4, "cone": 1}
	if err := s.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, found, err := s.LoadSnapshot(ctx)
	if err != nil || !found {
		t.Fatalf("LoadSnapshot: %v found=%v", err, found)
	}
	if got.RunID != second.RunID {
		t.Errorf("RunID = %q, want replacement %q", got.RunID, second.RunID)
	}
	if len(got.Vocab) != 4 || got.Vocab["new"] != 0 {
		t.Errorf("Old vocab should be gone, got %v", got.Vocab)
	}
}

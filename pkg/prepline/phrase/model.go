// Package phrase learns bigram collocations over a tokenized corpus and
// merges qualifying adjacent token pairs into single phrase tokens. The
// model follows an explicit two-state lifecycle: created untrained, it can
// only transform sequences once Fit has consumed the whole corpus (or once
// it has been reconstructed from a persisted snapshot).
package phrase

import (
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/textkit/prepline/pkg/prepline/internalerr"
	"github.com/textkit/prepline/pkg/prepline/store"
)

// Delimiter joins the components of a merged phrase token.
const Delimiter = "_"

// Config holds the training hyperparameters.
type Config struct {
	// MinCount is the minimum joint occurrence count for a pair to be
	// considered at all.
	MinCount int
	// Threshold is the minimum score for a pair to merge.
	Threshold float64
	// MaxVocabSize bounds the number of distinct entries tracked while
	// counting; rare entries are pruned when it is exceeded.
	MaxVocabSize int
	// Scoring selects the formula: "default" or "npmi".
	Scoring string
}

// Model detects and merges phrase tokens. The vocab map holds both unigram
// counts (plain tokens) and bigram counts (delimiter-joined pairs), the way
// the counting pass accumulates them.
type Model struct {
	cfg     Config
	scoring ScoringFunc

	vocab       map[string]int64
	minReduce   int64
	corpusWords int64

	runID     string
	trainedAt time.Time
	trained   bool
}

// NewModel validates the hyperparameters and returns an untrained model.
func NewModel(cfg Config) (*Model, error) {
	if cfg.MinCount < 1 {
		return nil, fmt.Errorf("min_count %d must be at least 1: %w", cfg.MinCount, internalerr.ErrInvalidConfig)
	}
	if cfg.MaxVocabSize < 1 {
		return nil, fmt.Errorf("max_vocab_size %d must be positive: %w", cfg.MaxVocabSize, internalerr.ErrInvalidConfig)
	}
	scoring, err := scoringByName(cfg.Scoring)
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:       cfg,
		scoring:   scoring,
		vocab:     make(map[string]int64),
		minReduce: 1,
	}, nil
}

// Trained reports whether the model can transform sequences.
func (m *Model) Trained() bool {
	return m.trained
}

// RunID identifies the training run that produced this model.
func (m *Model) RunID() string {
	return m.runID
}

// Fit counts unigrams and adjacent bigrams over the whole corpus. When the
// tracked vocabulary exceeds MaxVocabSize, entries below the current
// min-reduce watermark are pruned and the watermark rises, bounding memory
// at the cost of forgetting rare entries.
func (m *Model) Fit(corpus [][]string) {
	for _, sentence := range corpus {
		for i, token := range sentence {
			m.vocab[token]++
			m.corpusWords++
			if i > 0 {
				m.vocab[sentence[i-1]+Delimiter+token]++
			}
		}
		if len(m.vocab) > m.cfg.MaxVocabSize {
			m.prune()
		}
	}

	m.runID = ulid.Make().String()
	m.trainedAt = time.Now().UTC()
	m.trained = true

	log.Printf("phrase: trained model %s on %d sequences (%d corpus words, %d vocab entries)",
		m.runID, len(corpus), m.corpusWords, len(m.vocab))
}

func (m *Model) prune() {
	for entry, count := range m.vocab {
		if count < m.minReduce {
			delete(m.vocab, entry)
		}
	}
	m.minReduce++
}

// pairScore rates the adjacent pair (a, b). ok is false when either
// component or the pair itself is unknown, or the joint count is below
// MinCount — such pairs never merge.
func (m *Model) pairScore(a, b string) (float64, bool) {
	nA, okA := m.vocab[a]
	nB, okB := m.vocab[b]
	nAB, okAB := m.vocab[a+Delimiter+b]
	if !okA || !okB || !okAB || nAB < int64(m.cfg.MinCount) {
		return 0, false
	}
	return m.scoring(nA, nB, nAB, int64(len(m.vocab)), m.corpusWords, m.cfg.MinCount), true
}

// Transform rewrites one token sequence, merging each adjacent pair whose
// score exceeds the threshold into a single delimiter-joined token. Merges
// do not overlap: a merged token cannot start another merge.
func (m *Model) Transform(tokens []string) ([]string, error) {
	if !m.trained {
		return nil, fmt.Errorf("transform: %w", internalerr.ErrModelNotTrained)
	}

	out := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		if i+1 < len(tokens) {
			if score, ok := m.pairScore(tokens[i], tokens[i+1]); ok && score > m.cfg.Threshold {
				out = append(out, tokens[i]+Delimiter+tokens[i+1])
				i += 2
				continue
			}
		}
		out = append(out, tokens[i])
		i++
	}
	return out, nil
}

// TransformAll rewrites every sequence of a corpus, preserving order.
func (m *Model) TransformAll(corpus [][]string) ([][]string, error) {
	out := make([][]string, len(corpus))
	for i, sentence := range corpus {
		transformed, err := m.Transform(sentence)
		if err != nil {
			return nil, err
		}
		out[i] = transformed
	}
	return out, nil
}

// ScoredPhrase is one discovered phrase with its collocation score.
type ScoredPhrase struct {
	Phrase string
	Score  float64
}

// ExportPhrases walks the corpus and reports every merge the model makes,
// deduplicated by phrase text in corpus-encounter order. Applying the model
// to the same corpus performs exactly the merges reported here.
func (m *Model) ExportPhrases(corpus [][]string) ([]ScoredPhrase, error) {
	if !m.trained {
		return nil, fmt.Errorf("export phrases: %w", internalerr.ErrModelNotTrained)
	}

	seen := make(map[string]struct{})
	var phrases []ScoredPhrase
	for _, sentence := range corpus {
		i := 0
		for i < len(sentence) {
			if i+1 < len(sentence) {
				if score, ok := m.pairScore(sentence[i], sentence[i+1]); ok && score > m.cfg.Threshold {
					joined := sentence[i] + Delimiter + sentence[i+1]
					if _, dup := seen[joined]; !dup {
						seen[joined] = struct{}{}
						phrases = append(phrases, ScoredPhrase{Phrase: joined, Score: score})
					}
					i += 2
					continue
				}
			}
			i++
		}
	}
	return phrases, nil
}

// Snapshot captures the trained model state for persistence.
func (m *Model) Snapshot() (store.Snapshot, error) {
	if !m.trained {
		return store.Snapshot{}, fmt.Errorf("snapshot: %w", internalerr.ErrModelNotTrained)
	}

	vocab := make(map[string]int64, len(m.vocab))
	for entry, count := range m.vocab {
		vocab[entry] = count
	}

	return store.Snapshot{
		RunID:        m.runID,
		TrainedAt:    m.trainedAt,
		MinCount:     m.cfg.MinCount,
		Threshold:    m.cfg.Threshold,
		MaxVocabSize: m.cfg.MaxVocabSize,
		Scoring:      m.cfg.Scoring,
		Delimiter:    Delimiter,
		MinReduce:    m.minReduce,
		CorpusWords:  m.corpusWords,
		Vocab:        vocab,
	}, nil
}

// FromSnapshot reconstructs a trained model from persisted state.
func FromSnapshot(s store.Snapshot) (*Model, error) {
	m, err := NewModel(Config{
		MinCount:     s.MinCount,
		Threshold:    s.Threshold,
		MaxVocabSize: s.MaxVocabSize,
		Scoring:      s.Scoring,
	})
	if err != nil {
		return nil, err
	}

	m.vocab = make(map[string]int64, len(s.Vocab))
	for entry, count := range s.Vocab {
		m.vocab[entry] = count
	}
	m.minReduce = s.MinReduce
	m.corpusWords = s.CorpusWords
	m.runID = s.RunID
	m.trainedAt = s.TrainedAt
	m.trained = true

	return m, nil
}

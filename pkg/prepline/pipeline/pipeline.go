// Package pipeline orchestrates preprocessing: it builds the configured
// filter chain, applies it to every record, runs phrase detection over the
// resulting corpus, and joins the token sequences back into strings.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/textkit/prepline/pkg/prepline/config"
	"github.com/textkit/prepline/pkg/prepline/filter"
	"github.com/textkit/prepline/pkg/prepline/internalerr"
	"github.com/textkit/prepline/pkg/prepline/phrase"
	"github.com/textkit/prepline/pkg/prepline/store"
	"github.com/textkit/prepline/pkg/prepline/store/sqlite"
)

// PhraseSection is the settings section for phrase generation.
const PhraseSection = "phrase"

// OpenStoreFunc opens the model store backing phrase persistence.
type OpenStoreFunc func(ctx context.Context, path string) (store.Store, error)

// Options configures a Pipeline.
type Options struct {
	Settings config.Settings
	// OpenStore overrides the default SQLite-backed model store.
	OpenStore OpenStoreFunc
}

// Pipeline applies the configured preprocessing to collections of records.
type Pipeline struct {
	settings   config.Settings
	openStore  OpenStoreFunc
	fileBacked bool
}

// New creates a Pipeline. With no OpenStore override the phrase model
// persists to a SQLite file at the configured phrase_model path.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		settings:  opts.Settings,
		openStore: opts.OpenStore,
	}
	if p.openStore == nil {
		p.openStore = sqlite.Open
		p.fileBacked = true
	}
	return p
}

// Preprocess runs every record through the filter chain, applies phrase
// detection in train or apply mode, and returns one whitespace-joined
// string per input record, order preserved. Configuration and resource
// errors abort before any record is processed; a blank record degrades to
// an empty output string without affecting the rest of the batch.
func (p *Pipeline) Preprocess(ctx context.Context, records []string, useExistingModel bool) ([]string, error) {
	chain, err := filter.NewBuilder(p.settings).Build()
	if err != nil {
		return nil, fmt.Errorf("build filter chain: %w", err)
	}

	log.Printf("pipeline: applying %d filters to %d records", chain.Len(), len(records))
	corpus := make([][]string, len(records))
	for i, record := range records {
		corpus[i] = chain.Run(record)
	}

	corpus, err = p.generatePhrases(ctx, corpus, useExistingModel)
	if err != nil {
		return nil, err
	}

	processed := make([]string, len(corpus))
	for i, tokens := range corpus {
		processed[i] = strings.Join(tokens, " ")
	}
	return processed, nil
}

// generatePhrases passes the corpus through the phrase model. Train mode
// fits a fresh model on the whole corpus, persists it and writes the
// phrase export; apply mode loads the persisted model. When phrase
// generation is disabled the corpus passes through unchanged.
func (p *Pipeline) generatePhrases(ctx context.Context, corpus [][]string, useExistingModel bool) ([][]string, error) {
	enabled, err := p.settings.GetBool("generate_phrase", PhraseSection)
	if err != nil {
		return nil, err
	}
	if !enabled {
		log.Print("pipeline: skipping phrase generation")
		return corpus, nil
	}

	modelPath, err := p.settings.GetString("phrase_model", PhraseSection)
	if err != nil {
		return nil, err
	}

	if useExistingModel {
		return p.applyExistingModel(ctx, corpus, modelPath)
	}
	return p.trainModel(ctx, corpus, modelPath)
}

func (p *Pipeline) applyExistingModel(ctx context.Context, corpus [][]string, modelPath string) ([][]string, error) {
	// Opening a SQLite path creates an empty database, so check for the
	// model file up front: apply mode without a trained model is fatal.
	if p.fileBacked {
		if _, err := os.Stat(modelPath); err != nil {
			return nil, fmt.Errorf("phrase model %s: %w", modelPath, internalerr.ErrNotFound)
		}
	}

	st, err := p.openStore(ctx, modelPath)
	if err != nil {
		return nil, fmt.Errorf("open phrase model %s: %w", modelPath, err)
	}
	defer st.Close()

	snap, found, err := st.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load phrase model %s: %w", modelPath, err)
	}
	if !found {
		return nil, fmt.Errorf("phrase model %s: %w", modelPath, internalerr.ErrNotFound)
	}

	model, err := phrase.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}

	log.Printf("pipeline: applying loaded phrase model %s", model.RunID())
	return model.TransformAll(corpus)
}

func (p *Pipeline) trainModel(ctx context.Context, corpus [][]string, modelPath string) ([][]string, error) {
	cfg, err := p.phraseConfig()
	if err != nil {
		return nil, err
	}

	model, err := phrase.NewModel(cfg)
	if err != nil {
		return nil, err
	}

	log.Print("pipeline: generating new phrases")
	model.Fit(corpus)

	transformed, err := model.TransformAll(corpus)
	if err != nil {
		return nil, err
	}

	snap, err := model.Snapshot()
	if err != nil {
		return nil, err
	}

	st, err := p.openStore(ctx, modelPath)
	if err != nil {
		return nil, fmt.Errorf("open phrase model %s: %w", modelPath, err)
	}
	defer st.Close()

	log.Printf("pipeline: saving phrase model to %s", modelPath)
	if err := st.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("save phrase model %s: %w", modelPath, err)
	}

	exportPath, err := p.settings.GetString("phrase_dump_filename", PhraseSection)
	if err != nil {
		return nil, err
	}
	phrases, err := model.ExportPhrases(corpus)
	if err != nil {
		return nil, err
	}
	log.Printf("pipeline: dumping %d phrases to %s", len(phrases), exportPath)
	if err := phrase.ExportFile(exportPath, phrases); err != nil {
		return nil, err
	}

	return transformed, nil
}

func (p *Pipeline) phraseConfig() (phrase.Config, error) {
	minCount, err := p.settings.GetInt("min_count", PhraseSection)
	if err != nil {
		return phrase.Config{}, err
	}
	threshold, err := p.settings.GetFloat("threshold", PhraseSection)
	if err != nil {
		return phrase.Config{}, err
	}
	maxVocabSize, err := p.settings.GetInt("max_vocab_size", PhraseSection)
	if err != nil {
		return phrase.Config{}, err
	}
	scoring, err := p.settings.GetString("scoring", PhraseSection)
	if err != nil {
		return phrase.Config{}, err
	}
	return phrase.Config{
		MinCount:     minCount,
		Threshold:    threshold,
		MaxVocabSize: maxVocabSize,
		Scoring:      scoring,
	}, nil
}

// Vocabulary splits every processed string on whitespace and returns the
// distinct tokens sorted case-insensitively (byte order breaks ties).
// Tokens keep the case they have in the processed text.
func Vocabulary(processed []string) []string {
	seen := make(map[string]struct{})
	var vocab []string
	for _, line := range processed {
		for _, token := range strings.Fields(line) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			vocab = append(vocab, token)
		}
	}

	sort.Slice(vocab, func(i, j int) bool {
		li, lj := strings.ToLower(vocab[i]), strings.ToLower(vocab[j])
		if li != lj {
			return li < lj
		}
		return vocab[i] < vocab[j]
	})

	log.Printf("pipeline: got %d unique vocabularies", len(vocab))
	return vocab
}

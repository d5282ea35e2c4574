package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/textkit/prepline/pkg/prepline/internalerr"
	"github.com/textkit/prepline/pkg/prepline/synonym"
)

// LoadSynonyms reads a tab-delimited synonym map with a required
// `from<TAB>to` header row. Rows are kept in file order; uniqueness of
// from-values is the author's responsibility and is not validated here.
func LoadSynonyms(path string) (*synonym.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("synonym map %s: %v: %w", path, err, internalerr.ErrMissingResource)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("synonym map %s: empty file: %w", path, internalerr.ErrInvalidInput)
	}

	header := strings.Split(strings.TrimRight(lines[0], "\r"), "\t")
	if len(header) < 2 || header[0] != "from" || header[1] != "to" {
		return nil, fmt.Errorf("synonym map %s: expected 'from\\tto' header, got %q: %w",
			path, lines[0], internalerr.ErrInvalidInput)
	}

	table := synonym.NewTable()
	for i, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			return nil, fmt.Errorf("synonym map %s: line %d has %d columns, want 2: %w",
				path, i+2, len(parts), internalerr.ErrInvalidInput)
		}
		table.Add(parts[0], parts[1])
	}

	return table, nil
}

// LoadWordList reads a plain-text resource with one word per line. Blank
// lines are skipped; an empty file yields an empty list.
func LoadWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %v: %w", path, err, internalerr.ErrMissingResource)
	}

	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}

// LoadStoplist loads a stopword list from a YAML file with a `terms:`
// sequence. Used when the operator overrides the built-in base set.
func LoadStoplist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stoplist %s: %v: %w", path, err, internalerr.ErrMissingResource)
	}

	var sl struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("stoplist %s: %v: %w", path, err, internalerr.ErrInvalidInput)
	}

	return sl.Terms, nil
}

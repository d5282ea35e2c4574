package phrase

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteExport writes discovered phrases as tab-delimited rows with a
// `phrase	score` header, one row per phrase in the given order.
func WriteExport(w io.Writer, phrases []ScoredPhrase) error {
	if _, err := fmt.Fprintln(w, "phrase\tscore"); err != nil {
		return err
	}
	for _, p := range phrases {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", p.Phrase, strconv.FormatFloat(p.Score, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

// ExportFile writes the phrase export to a file, replacing any previous
// content.
func ExportFile(path string, phrases []ScoredPhrase) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create phrase export %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close phrase export: %w", closeErr)
		}
	}()

	return WriteExport(f, phrases)
}

package filter

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/textkit/prepline/pkg/prepline/config"
	"github.com/textkit/prepline/pkg/prepline/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// allEnabledSettings returns a filter section with every step enabled and
// all referenced resources present.
func allEnabledSettings(t *testing.T) config.Static {
	t.Helper()
	dir := t.TempDir()
	return config.Static{
		Section: {
			"lower":                      "true",
			"map_synonym":                "true",
			"synonym_map":                writeFile(t, dir, "synonyms.tsv", "from\tto\nsoy milk\tsoymilk\n"),
			"strip_punctuation":          "true",
			"strip_multiple_whitespaces": "true",
			"strip_numeric":              "true",
			"remove_stopwords":           "true",
			"stopwords_to_add":           writeFile(t, dir, "add.txt", ""),
			"stopwords_to_remove":        writeFile(t, dir, "remove.txt", ""),
			"strip_short":                "true",
			"strip_short_minsize":        "3",
			"lemmatize":                  "true",
		},
	}
}

func TestBuildCanonicalOrder(t *testing.T) {
	settings := allEnabledSettings(t)

	chain, err := NewBuilder(settings).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"lower",
		"map_synonym",
		"strip_punctuation",
		"strip_multiple_whitespaces",
		"strip_numeric",
		"remove_stopwords",
		"strip_short",
		"lemmatize",
	}
	if got := chain.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Chain order = %v, want %v", got, want)
	}
}

func TestBuildSkipsDisabledSteps(t *testing.T) {
	settings := config.Static{
		Section: {
			"lower":                      "true",
			"map_synonym":                "false",
			"strip_punctuation":          "true",
			"strip_multiple_whitespaces": "false",
			"strip_numeric":              "false",
			"remove_stopwords":           "false",
			"strip_short":                "false",
			"lemmatize":                  "false",
		},
	}

	chain, err := NewBuilder(settings).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{"lower", "strip_punctuation"}
	if got := chain.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Chain = %v, want %v", got, want)
	}
}

func TestBuildMissingFlagFails(t *testing.T) {
	settings := config.Static{Section: {"lower": "true"}}

	if _, err := NewBuilder(settings).Build(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Missing flag should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestBuildMissingSynonymResourceFails(t *testing.T) {
	settings := allEnabledSettings(t)
	settings[Section]["synonym_map"] = filepath.Join(t.TempDir(), "nope.tsv")

	if _, err := NewBuilder(settings).Build(); !errors.Is(err, internalerr.ErrMissingResource) {
		t.Errorf("Missing synonym map should wrap ErrMissingResource, got %v", err)
	}
}

func TestBuildMissingStopwordResourceFails(t *testing.T) {
	settings := allEnabledSettings(t)
	settings[Section]["stopwords_to_add"] = filepath.Join(t.TempDir(), "nope.txt")

	if _, err := NewBuilder(settings).Build(); !errors.Is(err, internalerr.ErrMissingResource) {
		t.Errorf("Missing stopword file should wrap ErrMissingResource, got %v", err)
	}
}

func TestBuildStopwordBaseOverride(t *testing.T) {
	dir := t.TempDir()
	settings := config.Static{
		Section: {
			"lower":                      "false",
			"map_synonym":                "false",
			"strip_punctuation":          "false",
			"strip_multiple_whitespaces": "false",
			"strip_numeric":              "false",
			"remove_stopwords":           "true",
			"stopwords_base":             writeFile(t, dir, "base.yaml", "terms:\n  - zork\n"),
			"stopwords_to_add":           writeFile(t, dir, "add.txt", ""),
			"stopwords_to_remove":        writeFile(t, dir, "remove.txt", ""),
			"strip_short":                "false",
			"lemmatize":                  "false",
		},
	}

	chain, err := NewBuilder(settings).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// With the override, only "zork" is a stopword; the default list is out.
	got := chain.Apply("the zork speaks")
	if got != "the speaks" {
		t.Errorf("Override base set not in effect: %q", got)
	}
}

func TestBuiltChainEndToEnd(t *testing.T) {
	settings := allEnabledSettings(t)
	settings[Section]["lemmatize"] = "false"
	settings[Section]["strip_short"] = "false"

	chain, err := NewBuilder(settings).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tokens := chain.Run("Soy Milk, 250 ml of goodness!")
	want := []string{"soymilk", "ml", "goodness"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Run = %v, want %v", tokens, want)
	}
}

// Package filter assembles the ordered chain of text transforms that turns
// a raw record into a token sequence. Which steps run is configuration
// driven, but the order is fixed: lowercase → synonym mapping → punctuation
// strip → whitespace collapse → numeric strip → stopword removal →
// short-word strip → lemmatize.
package filter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/textkit/prepline/pkg/prepline/lemma"
	"github.com/textkit/prepline/pkg/prepline/stopword"
	"github.com/textkit/prepline/pkg/prepline/synonym"
)

// Filter is a single named text→text transform step.
type Filter struct {
	Name  string
	Apply func(string) string
}

var (
	punctRE      = regexp.MustCompile(`[[:punct:]]+`)
	whitespaceRE = regexp.MustCompile(`\s+`)
	numericRE    = regexp.MustCompile(`[0-9]+`)
)

// Lowercase folds the text to lower case.
func Lowercase() Filter {
	return Filter{Name: "lower", Apply: strings.ToLower}
}

// MapSynonyms rewrites whole-word synonym occurrences.
func MapSynonyms(m *synonym.Mapper) Filter {
	return Filter{Name: "map_synonym", Apply: m.Replace}
}

// StripPunctuation replaces punctuation runs with a single space.
func StripPunctuation() Filter {
	return Filter{Name: "strip_punctuation", Apply: func(s string) string {
		return punctRE.ReplaceAllString(s, " ")
	}}
}

// CollapseWhitespace replaces whitespace runs with a single space.
func CollapseWhitespace() Filter {
	return Filter{Name: "strip_multiple_whitespaces", Apply: func(s string) string {
		return whitespaceRE.ReplaceAllString(s, " ")
	}}
}

// StripNumeric deletes digit runs from the text.
func StripNumeric() Filter {
	return Filter{Name: "strip_numeric", Apply: func(s string) string {
		return numericRE.ReplaceAllString(s, "")
	}}
}

// RemoveStopwords drops stopword tokens.
func RemoveStopwords(set stopword.Set) Filter {
	return Filter{Name: "remove_stopwords", Apply: func(s string) string {
		return stopword.Remove(s, set)
	}}
}

// StripShort drops tokens shorter than minSize runes.
func StripShort(minSize int) Filter {
	return Filter{Name: "strip_short", Apply: func(s string) string {
		fields := strings.Fields(s)
		kept := fields[:0]
		for _, w := range fields {
			if utf8.RuneCountInString(w) >= minSize {
				kept = append(kept, w)
			}
		}
		return strings.Join(kept, " ")
	}}
}

// Lemmatize reduces words to tagged base forms, dropping untaggable tokens.
func Lemmatize() Filter {
	return Filter{Name: "lemmatize", Apply: lemma.Lemmatize}
}

// Chain is an ordered, immutable sequence of filters.
type Chain struct {
	filters []Filter
}

// NewChain creates a chain from filters in the given order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Names returns the filter names in execution order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of steps in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Apply folds every filter over the text, each step consuming the output
// of the previous one.
func (c *Chain) Apply(text string) string {
	for _, f := range c.filters {
		text = f.Apply(text)
	}
	return text
}

// Run applies the chain and whitespace-splits the result into a token
// sequence. Blank input yields an empty sequence.
func (c *Chain) Run(text string) []string {
	return strings.Fields(c.Apply(text))
}

package synonym

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/textkit/prepline/pkg/prepline/internalerr"
)

// Table stores source→replacement phrase mappings in insertion order.
// Order matters: it fixes the alternation order of the compiled matcher,
// which makes first-match-wins behavior deterministic.
type Table struct {
	keys    []string
	mapping map[string]string
}

// NewTable creates an empty synonym table.
func NewTable() *Table {
	return &Table{mapping: make(map[string]string)}
}

// Add registers a from→to mapping. A repeated from-value overwrites the
// previous replacement but keeps its original position; detecting duplicate
// sources is the caller's concern.
func (t *Table) Add(from, to string) {
	if _, ok := t.mapping[from]; !ok {
		t.keys = append(t.keys, from)
	}
	t.mapping[from] = to
}

// Lookup returns the replacement for a source phrase.
func (t *Table) Lookup(from string) (string, bool) {
	to, ok := t.mapping[from]
	return to, ok
}

// Len returns the number of mappings in the table.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the source phrases in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Mapper rewrites whole-word occurrences of table keys in free text.
// All keys are compiled into a single word-boundary-anchored alternation,
// so at any position the first-listed matching key wins and matches never
// touch substrings embedded in larger words.
type Mapper struct {
	table *Table
	re    *regexp.Regexp
}

// NewMapper compiles a matcher for the given table. An empty table yields
// an identity mapper.
func NewMapper(t *Table) (*Mapper, error) {
	if t == nil || t.Len() == 0 {
		return &Mapper{table: t}, nil
	}

	alts := make([]string, 0, t.Len())
	for _, k := range t.keys {
		alts = append(alts, regexp.QuoteMeta(k))
	}

	re, err := regexp.Compile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile synonym pattern: %v: %w", err, internalerr.ErrInvalidInput)
	}

	return &Mapper{table: t, re: re}, nil
}

// Replace rewrites every whole-word occurrence of a source phrase with its
// mapped replacement. Text without matches is returned unchanged.
func (m *Mapper) Replace(text string) string {
	if m.re == nil {
		return text
	}
	return m.re.ReplaceAllStringFunc(text, func(match string) string {
		if to, ok := m.table.Lookup(match); ok {
			return to
		}
		return match
	})
}

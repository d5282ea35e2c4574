package stopword

import (
	"log"
	"sort"
	"strings"
)

// Set is a frozen collection of stopwords. Build it once per pipeline
// configuration; membership checks are the only operation used per record.
type Set map[string]struct{}

// Build produces the effective stopword set: (base ∪ add) − remove.
// The remove list is applied after the union, so a word present in both
// add and remove ends up removed. Build is a pure function of its three
// inputs; the log lines only record whether customization occurred.
func Build(base, add, remove []string) Set {
	set := make(Set, len(base)+len(add))
	for _, w := range base {
		set[w] = struct{}{}
	}

	if len(add) > 0 {
		log.Printf("stopword: adding %d custom stopwords %v", len(add), add)
	} else {
		log.Print("stopword: not adding any custom stopwords")
	}
	for _, w := range add {
		set[w] = struct{}{}
	}

	if len(remove) > 0 {
		log.Printf("stopword: removing %d stopwords %v", len(remove), remove)
	} else {
		log.Print("stopword: not removing any custom stopword")
	}
	for _, w := range remove {
		delete(set, w)
	}

	return set
}

// Has checks set membership.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of stopwords.
func (s Set) Len() int {
	return len(s)
}

// Words returns the stopwords in sorted order.
func (s Set) Words() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Remove drops every stopword from a whitespace-delimited string and joins
// the survivors with single spaces.
func Remove(text string, set Set) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, w := range fields {
		if !set.Has(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Package lemma reduces English words to base forms tagged by part of
// speech. It is a small rule-table lemmatizer: suffix rules cover regular
// inflection (plurals, -ing/-ed verb forms, -ly adverbs) and a closed-class
// table covers function words. Tokens that cannot be tagged as noun, verb,
// adjective or adverb are dropped from the output.
package lemma

import (
	"strings"
	"unicode"
)

// Tag is the part of speech assigned to a word.
type Tag int

const (
	Unknown Tag = iota
	Noun
	Verb
	Adj
	Adv
)

func (t Tag) String() string {
	switch t {
	case Noun:
		return "NN"
	case Verb:
		return "VB"
	case Adj:
		return "JJ"
	case Adv:
		return "RB"
	default:
		return "??"
	}
}

const (
	minWordLen = 2
	maxWordLen = 15
)

// closedClass lists function words (determiners, prepositions, pronouns,
// conjunctions, auxiliaries). These carry no open-class tag and are dropped.
var closedClass = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "and", "or", "but", "nor", "if", "while", "because",
		"although", "though", "unless", "until", "since", "whether",
		"of", "to", "in", "on", "at", "by", "for", "with", "from", "as",
		"into", "onto", "upon", "about", "over", "under", "between", "through",
		"is", "am", "are", "was", "were", "be", "been", "being",
		"do", "does", "did", "done",
		"have", "has", "had", "having",
		"will", "would", "shall", "should", "can", "could", "may", "might",
		"must", "not", "no", "so", "than", "too",
		"this", "that", "these", "those", "it", "its",
		"he", "she", "they", "them", "his", "her", "their", "theirs",
		"we", "us", "our", "ours", "you", "your", "yours", "i", "me", "my",
		"who", "whom", "which", "what", "when", "where", "why", "how",
		"there", "here",
	}
	for _, w := range words {
		closedClass[w] = struct{}{}
	}
}

var adjSuffixes = []string{"ful", "ous", "ive", "ible", "able", "less", "ish", "ical", "al", "ic"}

// Analyze tags a single lowercase word and returns its base form. Words
// outside the 2..15 character range and closed-class words come back as
// Unknown with an empty lemma.
func Analyze(word string) (string, Tag) {
	n := len(word)
	if n < minWordLen || n > maxWordLen {
		return "", Unknown
	}
	if _, ok := closedClass[word]; ok {
		return "", Unknown
	}

	// Adverbs: -ly forms keep their surface form.
	if n >= 5 && strings.HasSuffix(word, "ly") {
		return word, Adv
	}

	// Verbs: progressive and past forms reduce to the stem.
	if n >= 5 && strings.HasSuffix(word, "ing") {
		if stem := repairStem(word[:n-3]); stem != "" {
			return stem, Verb
		}
	}
	if n >= 5 && strings.HasSuffix(word, "ied") {
		return word[:n-3] + "y", Verb
	}
	if n >= 4 && strings.HasSuffix(word, "ed") {
		if stem := repairStem(word[:n-2]); stem != "" {
			return stem, Verb
		}
	}

	// Adjectives: derivational suffixes keep their surface form.
	for _, suf := range adjSuffixes {
		if n >= len(suf)+2 && strings.HasSuffix(word, suf) {
			return word, Adj
		}
	}

	// Nouns: regular plural reduction.
	if n >= 5 && strings.HasSuffix(word, "ies") {
		return word[:n-3] + "y", Noun
	}
	if n >= 4 && hasAnySuffix(word, "ses", "xes", "zes", "ches", "shes") {
		return word[:n-2], Noun
	}
	if n >= 3 && strings.HasSuffix(word, "s") &&
		!hasAnySuffix(word, "ss", "us", "is") {
		return word[:n-1], Noun
	}

	// Open-class fallback.
	return word, Noun
}

// repairStem fixes a stem left by suffix stripping: doubled final
// consonants collapse to one (running→run) except ll/ss/zz. Stems shorter
// than two characters are rejected.
func repairStem(stem string) string {
	if len(stem) < minWordLen {
		return ""
	}
	last := stem[len(stem)-1]
	if len(stem) >= 3 && stem[len(stem)-2] == last &&
		last != 'l' && last != 's' && last != 'z' && !isVowel(last) {
		return stem[:len(stem)-1]
	}
	return stem
}

func hasAnySuffix(word string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(word, suf) {
			return true
		}
	}
	return false
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Lemmatize reduces every word of a text to its tagged base form and joins
// the survivors with single spaces. Tokens the analyzer cannot tag are
// dropped, so the output may contain fewer words than the input.
func Lemmatize(text string) string {
	var out []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if l, tag := Analyze(current.String()); tag != Unknown {
			out = append(out, l)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return strings.Join(out, " ")
}
